package money

import (
	"errors"
	"testing"
)

func TestParseAcceptsWholeAndTwoDecimalAmounts(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"100", "100"},
		{"100.5", "100.5"},
		{"100.50", "100.5"},
		{"0.01", "0.01"},
		{"0", "0"},
		{"0.00", "0"},
		{"250000", "250000"},
	}
	for _, c := range cases {
		got, err := Parse(c.raw)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", c.raw, err)
		}
		if got.String() != c.want {
			t.Fatalf("Parse(%q) = %s, want %s", c.raw, got, c.want)
		}
	}
}

func TestParseRejectsMalformedAmounts(t *testing.T) {
	for _, raw := range []string{"", "abc", "100.", "100.123", ".50", "-100", "1,000", "100.5.0"} {
		if _, err := Parse(raw); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("Parse(%q): expected ErrInvalidAmount, got %v", raw, err)
		}
	}
}

func TestNegate(t *testing.T) {
	amount, err := Parse("75.25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Negate(amount) != "-75.25" {
		t.Fatalf("Negate = %s, want -75.25", Negate(amount))
	}
}
