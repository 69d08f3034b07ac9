// Package export renders the canonical transaction list for file-based
// consumers. The core pipeline never depends on this package.
package export

import (
	"io"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/finparse/finparse/internal/extract"
)

// csvRecord flattens one transaction plus its classification into a row.
type csvRecord struct {
	Date            string `csv:"date"`
	Description     string `csv:"description"`
	Debit           string `csv:"debit"`
	Credit          string `csv:"credit"`
	Amount          string `csv:"amount"`
	Balance         string `csv:"balance"`
	TransactionType string `csv:"transaction_type"`
	Direction       string `csv:"direction"`
	TransactionID   string `csv:"transaction_id"`
	Counterparty    string `csv:"counterparty"`
	Category        string `csv:"category"`
}

// WriteCSV writes the transactions as CSV with a header row. Absent numeric
// values become empty cells.
func WriteCSV(w io.Writer, txs []extract.Transaction) error {
	records := make([]csvRecord, 0, len(txs))
	for _, tx := range txs {
		rec := csvRecord{
			Date:        tx.Date,
			Description: tx.Description,
			Debit:       money(tx.Debit),
			Credit:      money(tx.Credit),
			Amount:      money(tx.Amount),
			Balance:     money(tx.Balance),
		}
		if c := tx.Category; c != nil {
			rec.TransactionType = c.TransactionType
			rec.Direction = c.Direction
			rec.TransactionID = c.TransactionID
			rec.Counterparty = c.Counterparty.Display()
			rec.Category = c.Category
		}
		records = append(records, rec)
	}
	return gocsv.Marshal(&records, w)
}

func money(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
