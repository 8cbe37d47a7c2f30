package split

import "fmt"

// Attribution tags which party a line item is charged to, or who paid.
// The wire and preference-store encoding is the constant's string value.
type Attribution string

const (
	Person1 Attribution = "PERSON_1"
	Person2 Attribution = "PERSON_2"
	Both    Attribution = "BOTH"
)

// ParseAttribution converts a wire string into an Attribution.
func ParseAttribution(s string) (Attribution, error) {
	switch Attribution(s) {
	case Person1, Person2, Both:
		return Attribution(s), nil
	default:
		return "", fmt.Errorf("unknown attribution %q", s)
	}
}

// Valid reports whether a is one of the three defined values.
func (a Attribution) Valid() bool {
	switch a {
	case Person1, Person2, Both:
		return true
	}
	return false
}
