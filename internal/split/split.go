// Package split implements the split-state model and settlement
// computation for a two-person receipt. Every operation is a pure
// function: it reads one immutable state and returns a new one, never
// mutating its input. The caller (the browser UI) owns the single
// current State and replaces it wholesale on every edit.
package split

import (
	"errors"

	"github.com/duosplit/receipt-split-service/internal/domain"
	"github.com/duosplit/receipt-split-service/internal/money"
)

// ErrIndexOutOfRange is returned when an edit addresses a non-existent
// item. Callers derive indices from the current item enumeration, so
// hitting this is a programmer error, not a recoverable condition.
var ErrIndexOutOfRange = errors.New("split: item index out of range")

// Item is one line of the split: an extracted receipt line plus the
// party it is charged to. Items are replaced, never mutated.
type Item struct {
	Label       string       `json:"label"`
	Price       money.Amount `json:"price"`
	Attribution Attribution  `json:"attribution"`
}

// State is a snapshot of the whole split: the items in original receipt
// order and who paid the bill. WhoPaid defaults to Person1.
type State struct {
	Items   []Item      `json:"items"`
	WhoPaid Attribution `json:"whoPaid"`
}

// Settlement is the outcome of a split: the party that owes money and
// how much. Amount is always >= 0.
type Settlement struct {
	Debtor Attribution  `json:"debtor"`
	Amount money.Amount `json:"amount"`
}

// PreferenceLookup resolves a canonical label to a remembered
// attribution. The second return value is false when no preference is
// stored, in which case the item defaults to Person1.
type PreferenceLookup func(canonicalLabel string) (Attribution, bool)

// New builds the initial State for a receipt. Items keep the receipt's
// order; each item's attribution comes from lookup (which may be nil)
// or defaults to Person1. The only possible failure is a malformed
// price string, which a validated Receipt never carries.
func New(receipt domain.Receipt, lookup PreferenceLookup) (State, error) {
	items := make([]Item, 0, len(receipt.Items))
	for _, ri := range receipt.Items {
		price, err := money.Parse(ri.Price)
		if err != nil {
			return State{}, err
		}
		attribution := Person1
		if lookup != nil {
			if saved, ok := lookup(CanonicalLabel(ri.Label)); ok && saved.Valid() {
				attribution = saved
			}
		}
		items = append(items, Item{
			Label:       ri.Label,
			Price:       price,
			Attribution: attribution,
		})
	}
	return State{Items: items, WhoPaid: Person1}, nil
}

// WithPrice returns a copy of s with the price of the item at index
// replaced. The label, attribution and every other item are untouched.
func (s State) WithPrice(index int, price money.Amount) (State, error) {
	if index < 0 || index >= len(s.Items) {
		return State{}, ErrIndexOutOfRange
	}
	next := s.copyItems()
	next.Items[index].Price = price
	return next, nil
}

// WithAttribution returns a copy of s with the attribution of the item
// at index replaced. Items are matched by position, not by value: two
// textually identical lines are distinct purchases and must be
// reassignable independently.
func (s State) WithAttribution(index int, attribution Attribution) (State, error) {
	if index < 0 || index >= len(s.Items) {
		return State{}, ErrIndexOutOfRange
	}
	next := s.copyItems()
	next.Items[index].Attribution = attribution
	return next, nil
}

// WithWhoPaid returns a copy of s with the payer replaced. Both is
// structurally legal (the shared-payment case) and never rejected.
func (s State) WithWhoPaid(payer Attribution) State {
	next := s.copyItems()
	next.WhoPaid = payer
	return next
}

// Total sums all item prices left to right from 0.00. Addition at fixed
// scale 2 is exact, so the order cannot change the result.
func (s State) Total() money.Amount {
	total := money.Zero
	for _, item := range s.Items {
		total = total.Add(item.Price)
	}
	return total
}

// Settle computes who owes whom and how much.
//
// With a single payer, the other person owes their own items plus half
// of the jointly attributed ones. When both paid (the degenerate shared
// case), only solely-attributed items matter: whoever was bought less
// for owes half the difference. Equal sums fall into the else branch,
// so a tie settles as (Person1, 0.00) by definition. The division by
// two is rounded half-to-even once, on the full numerator.
func (s State) Settle() Settlement {
	switch s.WhoPaid {
	case Person1:
		return Settlement{
			Debtor: Person2,
			Amount: s.sumFor(Person2).Add(s.sumFor(Both).Half()),
		}
	case Person2:
		return Settlement{
			Debtor: Person1,
			Amount: s.sumFor(Person1).Add(s.sumFor(Both).Half()),
		}
	default:
		spentForPerson1 := s.sumFor(Person1)
		spentForPerson2 := s.sumFor(Person2)
		if spentForPerson1.GreaterThan(spentForPerson2) {
			return Settlement{
				Debtor: Person2,
				Amount: spentForPerson1.Sub(spentForPerson2).Half(),
			}
		}
		return Settlement{
			Debtor: Person1,
			Amount: spentForPerson2.Sub(spentForPerson1).Half(),
		}
	}
}

func (s State) sumFor(a Attribution) money.Amount {
	sum := money.Zero
	for _, item := range s.Items {
		if item.Attribution == a {
			sum = sum.Add(item.Price)
		}
	}
	return sum
}

func (s State) copyItems() State {
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	return State{Items: items, WhoPaid: s.WhoPaid}
}
