package classify

import (
	"strings"
	"testing"
)

func TestCounterpartyDisplay(t *testing.T) {
	tests := []struct {
		name string
		c    *Counterparty
		want string
	}{
		{"nil", nil, ""},
		{"handle shown verbatim", &Counterparty{Handle: "john@upi"}, "john@upi"},
		{"tokens title cased", &Counterparty{Tokens: []string{"ACME", "retail", "stores"}}, "Acme Retail Stores"},
		{"short tokens uppercased", &Counterparty{Tokens: []string{"sb", "main", "br"}}, "SB Main BR"},
		{"handle wins over tokens", &Counterparty{Handle: "a@b", Tokens: []string{"ignored"}}, "a@b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Display(); got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCounterpartyDisplayTruncates(t *testing.T) {
	c := &Counterparty{Tokens: []string{strings.Repeat("verylongname", 10)}}
	if got := c.Display(); len(got) != displayNameMax {
		t.Errorf("len = %d, want %d", len(got), displayNameMax)
	}
}
