package domain

import (
	"net/url"
	"strings"
	"testing"
)

func TestParseReceipt(t *testing.T) {
	data := []byte(`{"t":"4.16","i":[{"l":"MILK 1L","p":"1.50"},{"l":"BREAD","p":"2.66"}]}`)

	receipt, err := ParseReceipt(data)
	if err != nil {
		t.Fatalf("ParseReceipt: %v", err)
	}
	if receipt.Total != "4.16" {
		t.Errorf("total = %q, want 4.16", receipt.Total)
	}
	if len(receipt.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(receipt.Items))
	}
	if receipt.Items[0].Label != "MILK 1L" || receipt.Items[0].Price != "1.50" {
		t.Errorf("item 0 = %+v", receipt.Items[0])
	}
}

func TestParseReceiptRejectsMalformedNumbers(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "garbage total", data: `{"t":"n/a","i":[]}`},
		{name: "garbage item price", data: `{"t":"1.00","i":[{"l":"X","p":"??"}]}`},
		{name: "empty item price", data: `{"t":"1.00","i":[{"l":"X","p":""}]}`},
		{name: "not json", data: `receipt`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseReceipt([]byte(tt.data)); err == nil {
				t.Errorf("ParseReceipt(%s) succeeded, want error", tt.data)
			}
		})
	}
}

func TestEncodeJSONRoundTrips(t *testing.T) {
	original := Receipt{
		Total: "7.00",
		Items: []ReceiptItem{
			{Label: "CITRON VERNA 0.198 KG X 5.39 €/kg", Price: "1.19"},
			{Label: "BREAD", Price: "5.81"},
		},
	}

	encoded, err := original.EncodeJSON()
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	if !strings.Contains(encoded, `"t":"7.00"`) {
		t.Errorf("encoded = %s, want compact field names", encoded)
	}

	decoded, err := ParseReceipt([]byte(encoded))
	if err != nil {
		t.Fatalf("ParseReceipt of encoded form: %v", err)
	}
	if decoded.Total != original.Total || len(decoded.Items) != len(original.Items) {
		t.Fatalf("round trip lost data: %+v", decoded)
	}
	for i := range original.Items {
		if decoded.Items[i] != original.Items[i] {
			t.Errorf("item %d = %+v, want %+v", i, decoded.Items[i], original.Items[i])
		}
	}
}

func TestQueryValue(t *testing.T) {
	receipt := Receipt{
		Total: "1.19",
		Items: []ReceiptItem{{Label: "CITRON VERNA €/kg", Price: "1.19"}},
	}

	value, err := receipt.QueryValue()
	if err != nil {
		t.Fatalf("QueryValue: %v", err)
	}

	unescaped, err := url.QueryUnescape(value)
	if err != nil {
		t.Fatalf("QueryUnescape: %v", err)
	}
	if _, err := ParseReceipt([]byte(unescaped)); err != nil {
		t.Errorf("query value does not round trip: %v", err)
	}
}
