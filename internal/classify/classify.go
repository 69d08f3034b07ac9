// Package classify derives transaction type, direction, counterparty and
// merchant category from free-text statement narration.
package classify

import (
	"regexp"
	"strings"
)

const (
	TypeUPI          = "UPI"
	TypeBankTransfer = "Bank Transfer"
	TypeRefund       = "Refund"
	TypeCardRefund   = "Card Refund"

	DirectionSent     = "Sent"
	DirectionReceived = "Received"

	Unknown = "Unknown"
)

// Counterparty is the extracted other side of a transaction. Exactly one of
// Handle or Tokens is populated: a UPI handle when the narration contains
// one, otherwise the narration's remaining whitespace-split tokens in order.
// The token-list fallback is a weak heuristic kept behind this type so a
// better extractor can replace it without breaking callers.
type Counterparty struct {
	Handle string   `json:"handle,omitempty"`
	Tokens []string `json:"tokens,omitempty"`
}

// Classification annotates one transaction description.
type Classification struct {
	TransactionType string        `json:"transaction_type"`
	Direction       string        `json:"direction"`
	TransactionID   string        `json:"transaction_id,omitempty"`
	Counterparty    *Counterparty `json:"counterparty,omitempty"`
	Category        string        `json:"category"`
}

// rule pairs a narration predicate with the type/direction it implies.
type rule struct {
	match     func(string) bool
	txType    string
	direction string
}

// typeRules are evaluated top to bottom; the first match wins. VisaDRefund
// sits before the bare Refund substring check, which would otherwise shadow
// it completely.
var typeRules = []rule{
	{matchAny(hasPrefix("UPIOUT"), contains("DR/"), contains("Sent")), TypeUPI, DirectionSent},
	{matchAny(hasPrefix("UPI IN"), contains("CR/")), TypeUPI, DirectionReceived},
	{matchAny(hasPrefix("NFT"), hasPrefix("NEFT")), TypeBankTransfer, DirectionSent},
	{matchAny(hasPrefix("IFN")), TypeBankTransfer, DirectionReceived},
	{matchAny(contains("VisaDRefund")), TypeCardRefund, DirectionReceived},
	{matchAny(contains("Refund")), TypeRefund, DirectionReceived},
}

var (
	transactionIDRe = regexp.MustCompile(`(UPIOUT|UPI IN|UPI/|NFT|IFN)[/ ]?([A-Za-z0-9]+)`)
	upiHandleRe     = regexp.MustCompile(`([\w.\-]+@\w+)`)
	trailingMCCRe   = regexp.MustCompile(`/(\d{4})$`)
)

// Classify parses one narration line. Pure function, no state across calls;
// the four result fields are detected independently of each other.
func Classify(description string) Classification {
	line := strings.TrimSpace(description)
	c := Classification{
		TransactionType: Unknown,
		Direction:       Unknown,
		Category:        Unknown,
	}

	for _, r := range typeRules {
		if r.match(line) {
			c.TransactionType = r.txType
			c.Direction = r.direction
			break
		}
	}

	if m := transactionIDRe.FindStringSubmatch(line); m != nil {
		c.TransactionID = m[2]
	}

	if m := upiHandleRe.FindStringSubmatch(line); m != nil {
		c.Counterparty = &Counterparty{Handle: m[1]}
	} else if words := strings.Fields(line); len(words) > 1 {
		c.Counterparty = &Counterparty{Tokens: words[1:]}
	}

	if m := trailingMCCRe.FindStringSubmatch(line); m != nil {
		c.Category = CategoryForCode(m[1])
	}

	return c
}

func hasPrefix(p string) func(string) bool {
	return func(s string) bool { return strings.HasPrefix(s, p) }
}

func contains(sub string) func(string) bool {
	return func(s string) bool { return strings.Contains(s, sub) }
}

func matchAny(preds ...func(string) bool) func(string) bool {
	return func(s string) bool {
		for _, p := range preds {
			if p(s) {
				return true
			}
		}
		return false
	}
}
