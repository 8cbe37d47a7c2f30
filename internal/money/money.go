// Package money provides an exact 2-decimal monetary amount.
//
// All arithmetic materializes results at scale 2 using banker's rounding
// (round half to even), so dividing an odd cent amount by two never
// accumulates representation error. Amounts are never held as binary
// floating point.
package money

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the fixed number of fraction digits for all amounts.
const Scale = 2

var two = decimal.NewFromInt(2)

// Amount is an immutable monetary value with exactly two fraction digits.
// The zero value is 0.00.
type Amount struct {
	d decimal.Decimal
}

// Zero is the 0.00 amount.
var Zero = Amount{}

// Parse converts a decimal string into an Amount. Both "." and "," are
// accepted as the decimal separator; "," is normalized to "." before
// parsing. Over-precise inputs are rounded half-to-even to two decimals.
func Parse(s string) (Amount, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{d.RoundBank(Scale)}, nil
}

// MustParse is Parse for trusted literals. It panics on invalid input.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FromCents builds an Amount from an integer number of cents.
func FromCents(cents int64) Amount {
	return Amount{decimal.New(cents, -Scale)}
}

// Add returns a + b. Addition at fixed scale 2 is exact.
func (a Amount) Add(b Amount) Amount {
	return Amount{a.d.Add(b.d).RoundBank(Scale)}
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount {
	return Amount{a.d.Sub(b.d).RoundBank(Scale)}
}

// Half returns a / 2, rounded half-to-even to two decimals. The rounding
// is applied once, to the full quotient.
func (a Amount) Half() Amount {
	return Amount{a.d.Div(two).RoundBank(Scale)}
}

// Cmp compares a and b: -1 if a < b, 0 if equal, +1 if a > b.
func (a Amount) Cmp(b Amount) int {
	return a.d.Cmp(b.d)
}

// GreaterThan reports whether a > b.
func (a Amount) GreaterThan(b Amount) bool {
	return a.d.GreaterThan(b.d)
}

// Equal reports whether a and b represent the same amount.
func (a Amount) Equal(b Amount) bool {
	return a.d.Equal(b.d)
}

// IsZero reports whether a is 0.00.
func (a Amount) IsZero() bool {
	return a.d.IsZero()
}

// String renders the amount with exactly two fraction digits, e.g. "2.00".
func (a Amount) String() string {
	return a.d.StringFixed(Scale)
}

// Format renders the amount for display: the 2-decimal value, a
// non-breaking space, and the currency glyph, e.g. "12.34 €".
func (a Amount) Format(glyph string) string {
	return a.String() + "\u00a0" + glyph
}

// MarshalJSON encodes the amount as a quoted 2-decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes an amount from a quoted decimal string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("amount must be a JSON string: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
