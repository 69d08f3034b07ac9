// Package extract turns bank-statement PDF bytes into a normalized,
// deduplicated list of transactions.
package extract

import (
	"math"

	"github.com/finparse/finparse/internal/classify"
)

// Transaction is the canonical unit produced by the pipeline. Optional
// numeric fields are nil when the statement did not report them or the cell
// failed to parse. Amount is signed: negative is money out, positive is
// money in.
type Transaction struct {
	Date        string                   `json:"date"`
	Description string                   `json:"description"`
	Debit       *float64                 `json:"debit"`
	Credit      *float64                 `json:"credit"`
	Amount      *float64                 `json:"amount"`
	Balance     *float64                 `json:"balance"`
	Category    *classify.Classification `json:"categories,omitempty"`
}

// sanitize clears non-finite values so the slice is safe to hand to any
// encoder. Callers downstream never see NaN or Inf.
func sanitize(txs []Transaction) {
	for i := range txs {
		txs[i].Debit = finite(txs[i].Debit)
		txs[i].Credit = finite(txs[i].Credit)
		txs[i].Amount = finite(txs[i].Amount)
		txs[i].Balance = finite(txs[i].Balance)
	}
}

func finite(v *float64) *float64 {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return v
}
