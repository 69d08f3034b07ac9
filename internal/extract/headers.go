package extract

import "strings"

// Field is a canonical statement column.
type Field string

const (
	fieldDate        Field = "date"
	fieldDescription Field = "description"
	fieldDebit       Field = "debit"
	fieldCredit      Field = "credit"
	fieldAmount      Field = "amount"
	fieldBalance     Field = "balance"
)

// headerAliases lists the header spellings seen across bank statements,
// already normalized (lowercase, single spaces).
var headerAliases = map[Field][]string{
	fieldDate:        {"date", "txn date", "transaction date", "value date"},
	fieldDescription: {"description", "narration", "details", "particulars", "remarks"},
	fieldDebit:       {"debit", "withdrawal", "dr", "debits"},
	fieldCredit:      {"credit", "deposit", "cr", "credits"},
	fieldAmount:      {"amount", "txn amount", "transaction amount"},
	fieldBalance:     {"balance", "closing balance", "running balance", "bal"},
}

// fieldOrder keeps mapping deterministic.
var fieldOrder = []Field{fieldDate, fieldDescription, fieldDebit, fieldCredit, fieldAmount, fieldBalance}

// HeaderMapping maps canonical fields to column indices in one table.
type HeaderMapping map[Field]int

func normalizeHeader(h string) string {
	return strings.ToLower(collapseSpace(h))
}

// mapHeaders resolves an arbitrary header row to a HeaderMapping. For each
// field the first cell whose normalized text equals an alias, or contains an
// alias as a substring, wins. A field is mapped at most once; columns are not
// reserved, so two fields may legitimately land on the same column.
func mapHeaders(cells []string) HeaderMapping {
	norm := make([]string, len(cells))
	for i, c := range cells {
		norm[i] = normalizeHeader(c)
	}

	m := HeaderMapping{}
	for _, f := range fieldOrder {
		for i, c := range norm {
			if matchesAlias(c, headerAliases[f]) {
				m[f] = i
				break
			}
		}
	}
	return m
}

func matchesAlias(cell string, aliases []string) bool {
	for _, a := range aliases {
		if cell == a || strings.Contains(cell, a) {
			return true
		}
	}
	return false
}

// usable reports whether a table with this mapping can be processed at all:
// date and description must be present plus at least one monetary column.
// Tables failing this are skipped wholesale, never row by row.
func (m HeaderMapping) usable() bool {
	if _, ok := m[fieldDate]; !ok {
		return false
	}
	if _, ok := m[fieldDescription]; !ok {
		return false
	}
	_, amount := m[fieldAmount]
	_, debit := m[fieldDebit]
	_, credit := m[fieldCredit]
	return amount || debit || credit
}

// cell returns the raw text of field f in row, or "" when the field is
// unmapped or the row is shorter than the mapped index.
func (m HeaderMapping) cell(row []string, f Field) string {
	idx, ok := m[f]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// number parses field f of row as money; nil when unmapped, out of range, or
// unparsable.
func (m HeaderMapping) number(row []string, f Field) *float64 {
	if _, ok := m[f]; !ok {
		return nil
	}
	v, ok := toFloat(m.cell(row, f))
	if !ok {
		return nil
	}
	return &v
}
