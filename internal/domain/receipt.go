// Package domain holds the receipt wire model shared by the extractor,
// the HTTP layer and the split engine.
package domain

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/duosplit/receipt-split-service/internal/money"
)

// ReceiptItem is one extracted line: a label and a decimal price string
// such as "12.34". Prices always use "." as the decimal separator.
type ReceiptItem struct {
	Label string `json:"l"`
	Price string `json:"p"`
}

// Receipt is the structured result of extracting a receipt document.
// The compact field names keep the JSON short enough to embed in a URL
// query parameter.
type Receipt struct {
	Total string        `json:"t"`
	Items []ReceiptItem `json:"i"`
}

// Validate checks that the total and every item price parse as decimal
// amounts. A malformed numeric string is an error surfaced to the
// caller, never silently coerced to zero.
func (r Receipt) Validate() error {
	if _, err := money.Parse(r.Total); err != nil {
		return fmt.Errorf("receipt total: %w", err)
	}
	for i, item := range r.Items {
		if _, err := money.Parse(item.Price); err != nil {
			return fmt.Errorf("receipt item %d (%q): %w", i, item.Label, err)
		}
	}
	return nil
}

// ParseReceipt decodes and validates a receipt from its JSON encoding.
func ParseReceipt(data []byte) (Receipt, error) {
	var r Receipt
	if err := json.Unmarshal(data, &r); err != nil {
		return Receipt{}, fmt.Errorf("decoding receipt: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Receipt{}, err
	}
	return r, nil
}

// EncodeJSON serializes the receipt to its compact JSON form. The
// encoding round-trips losslessly through ParseReceipt.
func (r Receipt) EncodeJSON() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encoding receipt: %w", err)
	}
	return string(data), nil
}

// QueryValue returns the receipt as a URL-escaped JSON string, ready to
// embed in a "receipt" query parameter.
func (r Receipt) QueryValue() (string, error) {
	data, err := r.EncodeJSON()
	if err != nil {
		return "", err
	}
	return url.QueryEscape(data), nil
}
