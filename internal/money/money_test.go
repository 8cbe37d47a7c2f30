package money

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "dot separator", input: "12.34", want: "12.34"},
		{name: "comma separator", input: "12,34", want: "12.34"},
		{name: "integer", input: "7", want: "7.00"},
		{name: "one fraction digit", input: "2.5", want: "2.50"},
		{name: "surrounding whitespace", input: " 3.10 ", want: "3.10"},
		{name: "negative", input: "-1.50", want: "-1.50"},
		{name: "over-precise rounds half to even", input: "1.005", want: "1.00"},
		{name: "over-precise rounds up to even", input: "1.015", want: "1.02"},
		{name: "empty", input: "", wantErr: true},
		{name: "letters", input: "abc", wantErr: true},
		{name: "two separators", input: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestHalfRoundsHalfToEven(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "0.01", want: "0.00"}, // 0.005 rounds to even 0.00
		{input: "0.03", want: "0.02"}, // 0.015 rounds to even 0.02
		{input: "0.05", want: "0.02"},
		{input: "0.07", want: "0.04"},
		{input: "2.50", want: "1.25"},
		{input: "10.00", want: "5.00"},
	}

	for _, tt := range tests {
		got := MustParse(tt.input).Half()
		if got.String() != tt.want {
			t.Errorf("Half(%s) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestArithmeticIsExact(t *testing.T) {
	// 0.1 + 0.2 is the classic binary float trap.
	got := MustParse("0.1").Add(MustParse("0.2"))
	if got.String() != "0.30" {
		t.Errorf("0.1 + 0.2 = %s, want 0.30", got)
	}

	got = MustParse("1.00").Sub(MustParse("0.42"))
	if got.String() != "0.58" {
		t.Errorf("1.00 - 0.42 = %s, want 0.58", got)
	}
}

func TestZeroValue(t *testing.T) {
	var a Amount
	if a.String() != "0.00" {
		t.Errorf("zero value String() = %s, want 0.00", a)
	}
	if !a.IsZero() {
		t.Error("zero value IsZero() = false")
	}
	if !a.Equal(FromCents(0)) {
		t.Error("zero value != FromCents(0)")
	}
}

func TestFromCents(t *testing.T) {
	if got := FromCents(1234); got.String() != "12.34" {
		t.Errorf("FromCents(1234) = %s, want 12.34", got)
	}
	if got := FromCents(-5); got.String() != "-0.05" {
		t.Errorf("FromCents(-5) = %s, want -0.05", got)
	}
}

func TestFormat(t *testing.T) {
	got := MustParse("12.34").Format("€")
	if got != "12.34\u00a0€" {
		t.Errorf("Format = %q, want amount, non-breaking space, glyph", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(MustParse("5.10"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"5.10"` {
		t.Errorf("marshal = %s, want %q", data, `"5.10"`)
	}

	var a Amount
	if err := json.Unmarshal(data, &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !a.Equal(MustParse("5.10")) {
		t.Errorf("round trip = %s, want 5.10", a)
	}
}

func TestUnmarshalJSONRejectsNonString(t *testing.T) {
	var a Amount
	if err := json.Unmarshal([]byte(`5.10`), &a); err == nil {
		t.Error("unmarshal of bare number succeeded, want error")
	}
	if err := json.Unmarshal([]byte(`"abc"`), &a); err == nil {
		t.Error("unmarshal of non-numeric string succeeded, want error")
	}
}
