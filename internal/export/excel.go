package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/finparse/finparse/internal/extract"
)

const sheetName = "Transactions"

var xlsxHeaders = []interface{}{
	"Date", "Description", "Debit", "Credit", "Amount", "Balance",
	"Type", "Direction", "Transaction ID", "Counterparty", "Category",
}

// WriteXLSX writes the transactions as a single-sheet workbook. Absent
// numeric values become empty cells.
func WriteXLSX(w io.Writer, txs []extract.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &xlsxHeaders); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	for i, tx := range txs {
		row := []interface{}{
			tx.Date, tx.Description,
			moneyCell(tx.Debit), moneyCell(tx.Credit),
			moneyCell(tx.Amount), moneyCell(tx.Balance),
			"", "", "", "", "",
		}
		if c := tx.Category; c != nil {
			row[6] = c.TransactionType
			row[7] = c.Direction
			row[8] = c.TransactionID
			row[9] = c.Counterparty.Display()
			row[10] = c.Category
		}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell address for row %d: %w", i, err)
		}
		if err := f.SetSheetRow(sheetName, addr, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	return f.Write(w)
}

func moneyCell(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
