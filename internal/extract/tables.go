package extract

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// colGapMin is the horizontal gap, in points, that splits two text runs
	// into separate cells during the gap pass.
	colGapMin = 10.0
	// wordGapMin is the gap rendered as a space inside one cell.
	wordGapMin = 1.0
	// colSlack widens header column boundaries so data slightly left of a
	// header still lands in its column.
	colSlack = 4.0
)

// cell is a positioned run of text on one page line.
type cell struct {
	x    float64
	text string
}

// line is one visual row of a page, cells ordered left to right.
type line []cell

// table is a candidate transaction table: a resolved header mapping plus its
// data rows (header row excluded).
type table struct {
	mapping HeaderMapping
	rows    [][]string
}

// pageLines converts a page's positioned text into ordered lines of cells.
// The pdf library can panic on odd content streams; that is contained here so
// a bad page costs only that page.
func pageLines(p pdf.Page) (lines []line, err error) {
	defer func() {
		if r := recover(); r != nil {
			lines, err = nil, fmt.Errorf("page content: %v", r)
		}
	}()

	rows, err := p.GetTextByRow()
	if err != nil {
		return nil, err
	}
	// Top of page first. PDF y grows upward.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position > rows[j].Position })

	for _, row := range rows {
		texts := make([]pdf.Text, len(row.Content))
		copy(texts, row.Content)
		sort.SliceStable(texts, func(i, j int) bool { return texts[i].X < texts[j].X })
		if ln := mergeFragments(texts); len(ln) > 0 {
			lines = append(lines, ln)
		}
	}
	return lines, nil
}

// mergeFragments clusters a line's text fragments into cells by x-gap.
func mergeFragments(texts []pdf.Text) line {
	var (
		ln    line
		buf   strings.Builder
		cellX float64
		endX  float64
	)
	flush := func() {
		text := strings.TrimSpace(buf.String())
		if text != "" {
			ln = append(ln, cell{x: cellX, text: text})
		}
		buf.Reset()
	}

	for _, t := range texts {
		if t.S == "" {
			continue
		}
		if buf.Len() == 0 {
			cellX = t.X
		} else {
			gap := t.X - endX
			if gap > colGapMin {
				flush()
				cellX = t.X
			} else if gap > wordGapMin {
				buf.WriteString(" ")
			}
		}
		buf.WriteString(t.S)
		if w := t.X + t.W; w > endX {
			endX = w
		}
	}
	flush()
	return ln
}

// tablesOnPage finds candidate tables. A table starts at any line whose cells
// resolve to a usable header mapping and runs to the next header line or the
// end of the page. Each span can be emitted by two detection passes: the gap
// pass keeps the cells as clustered, the header-anchored pass re-slices every
// row by the header cells' x-positions. Overlap between the passes is removed
// later by deduplication. The gap pass is withheld when any row came out with
// fewer cells than the header: a blank cell shifts its neighbors one column
// left, and a misaligned row would dodge the dedup key.
func tablesOnPage(lines []line) []table {
	var out []table

	i := 0
	for i < len(lines) {
		m := mapHeaders(cellTexts(lines[i]))
		if !m.usable() {
			i++
			continue
		}

		end := i + 1
		for end < len(lines) {
			if next := mapHeaders(cellTexts(lines[end])); next.usable() {
				break
			}
			end++
		}

		header := lines[i]
		body := lines[i+1 : end]

		gapPass := table{mapping: m}
		complete := true
		for _, ln := range body {
			cells := cellTexts(ln)
			if len(cells) > 0 && len(cells) != len(header) {
				complete = false
			}
			gapPass.rows = append(gapPass.rows, cells)
		}

		emitted := false
		if complete {
			out = append(out, gapPass)
			emitted = true
		}
		if anchored, ok := sliceByHeader(header, body, m); ok {
			out = append(out, anchored)
			emitted = true
		}
		if !emitted {
			out = append(out, gapPass)
		}

		i = end
	}
	return out
}

// sliceByHeader re-slices body rows into columns bounded by the header
// cells' x-positions.
func sliceByHeader(header line, body []line, m HeaderMapping) (table, bool) {
	if len(header) < 2 {
		return table{}, false
	}
	bounds := make([]float64, len(header))
	for j, c := range header {
		bounds[j] = c.x - colSlack
	}

	t := table{mapping: m}
	for _, ln := range body {
		row := make([]string, len(header))
		for _, c := range ln {
			j := columnFor(bounds, c.x)
			if row[j] == "" {
				row[j] = c.text
			} else {
				row[j] += " " + c.text
			}
		}
		t.rows = append(t.rows, row)
	}
	return t, true
}

func columnFor(bounds []float64, x float64) int {
	col := 0
	for j := 1; j < len(bounds); j++ {
		if x >= bounds[j] {
			col = j
		}
	}
	return col
}

func cellTexts(ln line) []string {
	out := make([]string, len(ln))
	for i, c := range ln {
		out[i] = c.text
	}
	return out
}

// rowsFromTable types one table's data rows. Entirely empty rows are
// skipped, and rows whose date cell holds no digit are discarded; that guards
// against footer and summary lines that survive table detection.
func rowsFromTable(t table) []Transaction {
	var out []Transaction
	for _, row := range t.rows {
		if rowEmpty(row) {
			continue
		}
		date := strings.TrimSpace(t.mapping.cell(row, fieldDate))
		if !strings.ContainsAny(date, "0123456789") {
			continue
		}

		tx := Transaction{
			Date:        normDateToISO(date),
			Description: collapseSpace(t.mapping.cell(row, fieldDescription)),
			Debit:       t.mapping.number(row, fieldDebit),
			Credit:      t.mapping.number(row, fieldCredit),
			Amount:      t.mapping.number(row, fieldAmount),
			Balance:     t.mapping.number(row, fieldBalance),
		}
		deriveAmount(&tx)
		out = append(out, tx)
	}
	return out
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// deriveAmount fills the signed amount from debit/credit when the statement
// had no amount column. With both populated, the larger magnitude decides the
// sign. A row with neither stays amount-less (balance-only rows are kept).
func deriveAmount(tx *Transaction) {
	if tx.Amount != nil {
		return
	}
	switch {
	case tx.Debit != nil && tx.Credit == nil:
		v := -math.Abs(*tx.Debit)
		tx.Amount = &v
	case tx.Credit != nil && tx.Debit == nil:
		v := math.Abs(*tx.Credit)
		tx.Amount = &v
	case tx.Debit != nil && tx.Credit != nil:
		if math.Abs(*tx.Credit) > math.Abs(*tx.Debit) {
			v := math.Abs(*tx.Credit)
			tx.Amount = &v
		} else {
			v := -math.Abs(*tx.Debit)
			tx.Amount = &v
		}
	}
}
