package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// punctuationRe matches everything outside letters, digits, underscore and
// whitespace. Unicode classes, so accented narration keeps its letters.
var punctuationRe = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// descKey normalizes a description for duplicate detection: punctuation
// stripped, lowercased, whitespace collapsed.
func descKey(s string) string {
	return collapseSpace(punctuationRe.ReplaceAllString(strings.ToLower(s), ""))
}

// dedupKey identifies one underlying transaction across repeated table
// detections. A missing amount or balance is equal only to another missing
// value, never a wildcard.
func dedupKey(tx Transaction) string {
	return strings.Join([]string{
		tx.Date,
		descKey(tx.Description),
		optKey(tx.Amount),
		optKey(tx.Balance),
	}, "\x1f")
}

func optKey(v *float64) string {
	if v == nil {
		return "<nil>"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

// reconcile removes duplicate rows (first occurrence wins) and orders the
// survivors chronologically. Sorting is all-or-nothing: if any date fails to
// parse as ISO, the whole set keeps its extraction order.
func reconcile(rows []Transaction) []Transaction {
	seen := make(map[string]struct{}, len(rows))
	out := make([]Transaction, 0, len(rows))
	for _, tx := range rows {
		tx.Description = collapseSpace(tx.Description)
		key := dedupKey(tx)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tx)
	}

	type dated struct {
		tx Transaction
		t  time.Time
	}
	parsed := make([]dated, len(out))
	for i, tx := range out {
		t, err := time.Parse("2006-01-02", tx.Date)
		if err != nil {
			return out
		}
		parsed[i] = dated{tx: tx, t: t}
	}

	sort.SliceStable(parsed, func(i, j int) bool {
		a, b := parsed[i], parsed[j]
		if !a.t.Equal(b.t) {
			return a.t.Before(b.t)
		}
		if c := compareAmount(a.tx.Amount, b.tx.Amount); c != 0 {
			return c < 0
		}
		return a.tx.Description < b.tx.Description
	})

	for i := range parsed {
		out[i] = parsed[i].tx
	}
	return out
}

// compareAmount orders ascending with missing amounts last.
func compareAmount(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}
