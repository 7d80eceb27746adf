package matching

import (
	"strings"
	"unicode"
)

// honorifics are dropped as standalone tokens during normalization so
// "Mr John Smith" and "John Smith" compare equal.
var honorifics = map[string]struct{}{
	"mr":  {},
	"ms":  {},
	"mrs": {},
	"dr":  {},
}

// NormalizeName canonicalizes a free-form name for comparison: lowercase,
// letters and spaces only, honorific tokens removed, whitespace collapsed.
// Total and idempotent; empty input yields empty output.
func NormalizeName(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	words := strings.Fields(b.String())
	kept := words[:0]
	for _, w := range words {
		if _, skip := honorifics[w]; skip {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}
