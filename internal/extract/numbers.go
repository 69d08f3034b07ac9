package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	currencyRe     = regexp.MustCompile(`(?i)(₹|\$|€|£|INR|USD|EUR|GBP)`)
	leadingJunkRe  = regexp.MustCompile(`^[^0-9\-.]+`)
	trailingJunkRe = regexp.MustCompile(`[^0-9.]+$`)
	dayMonthYearRe = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})$`)
)

// collapseSpace trims s and squeezes internal whitespace runs to one space.
func collapseSpace(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// toFloat parses a locale-formatted money string: thousands commas,
// accounting parentheses for negatives, common currency symbols/codes, and
// stray surrounding text are all stripped before parsing. Unparsable input
// reports ok=false rather than an error.
func toFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "(", "-")
	s = strings.ReplaceAll(s, ")", "")
	s = strings.TrimSpace(currencyRe.ReplaceAllString(s, ""))
	s = leadingJunkRe.ReplaceAllString(s, "")
	s = trailingJunkRe.ReplaceAllString(s, "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// normDateToISO converts day-first dates like 12/3/2024 or 01-04-24 to
// YYYY-MM-DD. A two-digit year is expanded with a 20 prefix. Anything that
// does not match, including an invalid calendar date, is returned unchanged.
func normDateToISO(s string) string {
	s = strings.TrimSpace(s)
	m := dayMonthYearRe.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	year := m[3]
	if len(year) == 2 {
		year = "20" + year
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	y, _ := strconv.Atoi(year)

	t := time.Date(y, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || t.Month() != time.Month(month) || t.Day() != day {
		return s
	}
	return t.Format("2006-01-02")
}
