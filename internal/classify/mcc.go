package classify

import "fmt"

// mccCategories maps the merchant category codes seen in card narrations to
// display labels.
var mccCategories = map[string]string{
	"5541": "Service Stations (without Ancillary services)",
	"5411": "Grocery Stores, Supermarkets",
	"4111": "Local/Suburban Commuter Passenger Transport/Ferries",
	"5921": "Package Stores, Beer, Wine, Liquor",
	"5812": "Eating Places and Restaurants",
	"5311": "Department Stores",
	"9399": "Government Services, Not Elsewhere Classified",
	"5912": "Drug Stores and Pharmacies",
	"8062": "Hospitals",
	"5699": "Miscellaneous Apparel and Accessory Stores",
	"5813": "Drinking Places (Alcoholic Bev) - Bars, Taverns",
	"5651": "Family Clothing Stores",
	"5944": "Jewellery, Watches, Clocks and Silverware Stores",
	"7011": "Lodging - Hotels, Motels, Resorts",
	"5814": "Fast Food Restaurants",
	"5691": "Men's and Women's Clothing Stores",
	"5732": "Radio, Television and Stereo Stores",
	"5983": "Gas / Fuel Station",
	"4814": "Telecommunication Services",
	"5462": "Bakeries",
	"4812": "Telecomm Equipment including Telephone Sales",
	"5661": "Shoe Stores",
	"5722": "Household Appliance Stores",
	"5499": "Misc Food/Convenience Stores/Speciality Markets",
	"8299": "Schools and Educational Services",
	"4900": "Utilities - Electric/Gas/Heating Oil/Sanitary/Water",
	"7832": "Motion Picture Theatres",
	"5511": "Auto and Truck Dealers (New and Used) Sales, Service",
	"5441": "Candy, Nut, Confectionery Stores",
	"5047": "Dental/Laboratory/Medical/Ophthalmic Hospital Supply",
}

// CategoryForCode resolves a 4-digit MCC to its label. Codes outside the
// table keep the code visible in the result.
func CategoryForCode(code string) string {
	if label, ok := mccCategories[code]; ok {
		return label
	}
	return fmt.Sprintf("Unknown (%s)", code)
}
