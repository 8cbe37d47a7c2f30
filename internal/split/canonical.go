package split

import "strings"

// canonicalMaxLen caps canonical labels so near-identical long labels
// still collide onto the same preference key.
const canonicalMaxLen = 10

// CanonicalLabel derives the preference-store key for an item label:
// lowercase, every character outside a-z removed, truncated to 10
// characters. Two distinct items may share a key; the preference store
// is a best-guess default, not an identifier.
func CanonicalLabel(label string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(label) {
		if r < 'a' || r > 'z' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == canonicalMaxLen {
			break
		}
	}
	return b.String()
}
