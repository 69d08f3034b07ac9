package extract

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/finparse/finparse/internal/classify"
)

// buildPDF assembles a document from pre-rendered indirect objects, computing
// cross-reference offsets while writing so the result is structurally valid.
// Object number n must be objects[n-1]. trailerExtra is appended inside the
// trailer dictionary.
func buildPDF(t *testing.T, objects []string, trailerExtra string) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects))
	for _, obj := range objects {
		offsets = append(offsets, buf.Len())
		buf.WriteString(obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R%s >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, trailerExtra, xref)
	return buf.Bytes()
}

// minimalPDF is a one-page document with no content streams.
func minimalPDF(t *testing.T) []byte {
	return buildPDF(t, []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>\nendobj\n",
	}, "")
}

// pdfText positions one run of text on a page.
type pdfText struct {
	x, y float64
	s    string
}

func contentStream(texts []pdfText) string {
	var b strings.Builder
	b.WriteString("BT\n/F1 10 Tf\n")
	for _, tx := range texts {
		fmt.Fprintf(&b, "1 0 0 1 %g %g Tm (%s) Tj\n", tx.x, tx.y, tx.s)
	}
	b.WriteString("ET")
	return b.String()
}

func streamObject(num int, content string) string {
	return fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", num, len(content), content)
}

// statementPDF is a two-page document: page one carries a transaction table
// as positioned text, page two only narrative prose. The font object carries
// an explicit /Widths array so every glyph has a real advance and the text
// extractor sees distinct x-positions.
func statementPDF(t *testing.T) []byte {
	page1 := contentStream([]pdfText{
		{40, 700, "Date"}, {120, 700, "Narration"}, {320, 700, "Debit"}, {400, 700, "Credit"}, {480, 700, "Balance"},
		{40, 680, "01/02/2024"}, {120, 680, "UPIOUT/XYZ123/john@upi/5812"}, {320, 680, "250.00"}, {480, 680, "9,750.00"},
		{40, 660, "02/02/2024"}, {120, 660, "NEFT salary remittance"}, {400, 660, "5,000.00"}, {480, 660, "14,750.00"},
	})
	page2 := contentStream([]pdfText{
		{40, 700, "This is a system generated summary."},
		{40, 680, "No signature is needed."},
	})
	widths := strings.TrimSpace(strings.Repeat("500 ", 95))

	return buildPDF(t, []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R 5 0 R] /Count 2 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 7 0 R >> >> /Contents 4 0 R >>\nendobj\n",
		streamObject(4, page1),
		"5 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 7 0 R >> >> /Contents 6 0 R >>\nendobj\n",
		streamObject(6, page2),
		"7 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /FirstChar 32 /LastChar 126 /Widths [" + widths + "] >>\nendobj\n",
	}, "")
}

func TestExtractStatement(t *testing.T) {
	svc := NewService(Config{})

	txs, err := svc.Extract(context.Background(), statementPDF(t), "")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	// The narrative page contributes nothing.
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2: %+v", len(txs), txs)
	}

	first := txs[0]
	if first.Date != "2024-02-01" {
		t.Errorf("date = %q, want 2024-02-01", first.Date)
	}
	if first.Description != "UPIOUT/XYZ123/john@upi/5812" {
		t.Errorf("description = %q", first.Description)
	}
	if first.Amount == nil || *first.Amount != -250 {
		t.Errorf("amount = %v, want -250", first.Amount)
	}
	if first.Balance == nil || *first.Balance != 9750 {
		t.Errorf("balance = %v, want 9750", first.Balance)
	}
	if first.Category == nil {
		t.Fatal("first transaction not classified")
	}
	if first.Category.TransactionType != classify.TypeUPI || first.Category.Direction != classify.DirectionSent {
		t.Errorf("classification = %s/%s, want UPI/Sent", first.Category.TransactionType, first.Category.Direction)
	}
	if first.Category.Category != "Eating Places and Restaurants" {
		t.Errorf("category = %q", first.Category.Category)
	}

	second := txs[1]
	if second.Date != "2024-02-02" {
		t.Errorf("date = %q, want 2024-02-02", second.Date)
	}
	if second.Amount == nil || *second.Amount != 5000 {
		t.Errorf("amount = %v, want 5000", second.Amount)
	}
	if second.Category == nil || second.Category.TransactionType != classify.TypeBankTransfer {
		t.Errorf("second classification = %+v, want Bank Transfer", second.Category)
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	svc := NewService(Config{})

	txs, err := svc.Extract(context.Background(), minimalPDF(t), "")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	// A readable statement with no tables is a valid, empty result.
	if len(txs) != 0 {
		t.Errorf("got %d transactions, want 0", len(txs))
	}
}

func TestExtractGarbage(t *testing.T) {
	svc := NewService(Config{})

	_, err := svc.Extract(context.Background(), []byte("%PDF-haha nope"), "")
	if err == nil {
		t.Fatal("want error for malformed document")
	}
	if code := CodeOf(err); code != ErrInvalidDocument {
		t.Errorf("code = %q, want %q", code, ErrInvalidDocument)
	}
}

func TestSanitizeClearsNonFinite(t *testing.T) {
	txs := []Transaction{{Date: "2024-01-01", Amount: fp(math.Inf(1)), Balance: fp(100)}}
	sanitize(txs)
	if txs[0].Amount != nil {
		t.Errorf("amount = %v, want cleared", *txs[0].Amount)
	}
	if txs[0].Balance == nil || *txs[0].Balance != 100 {
		t.Errorf("balance = %v, want 100 untouched", txs[0].Balance)
	}
}
