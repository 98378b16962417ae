package pkginfo

import (
	"sort"
	"strings"
)

// Placeholder tokens used in the template scripts.
const (
	PlaceholderPrinterName = "PRINTERNAME"
	PlaceholderAddress     = "ADDRESS"
	PlaceholderDriver      = "DRIVER"
	PlaceholderOptions     = "OPTIONS"
	PlaceholderLocation    = "LOCATION"
	PlaceholderDisplayName = "DISPLAY_NAME"
)

// Placeholders maps placeholder tokens to their replacement text.
type Placeholders map[string]string

// Substitute replaces every occurrence of each token in text. Replacement is
// a single left-to-right pass: inserted values are never scanned again, and
// at a given position the longest token wins.
func Substitute(text string, vars Placeholders) string {
	if len(vars) == 0 {
		return text
	}

	tokens := make([]string, 0, len(vars))
	for token := range vars {
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})

	pairs := make([]string, 0, 2*len(tokens))
	for _, token := range tokens {
		pairs = append(pairs, token, vars[token])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
