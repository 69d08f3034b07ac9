package classify

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const displayNameMax = 50

// Display renders a counterparty for human-readable output. A UPI handle is
// shown as-is; a token list becomes a title-cased name, short tokens
// uppercased since they are usually bank or branch codes.
func (c *Counterparty) Display() string {
	if c == nil {
		return ""
	}
	if c.Handle != "" {
		return c.Handle
	}

	caser := cases.Title(language.English)
	words := make([]string, len(c.Tokens))
	for i, w := range c.Tokens {
		if len(w) > 2 {
			words[i] = caser.String(strings.ToLower(w))
		} else {
			words[i] = strings.ToUpper(w)
		}
	}

	name := strings.Join(words, " ")
	if len(name) > displayNameMax {
		name = name[:displayNameMax]
	}
	return name
}
