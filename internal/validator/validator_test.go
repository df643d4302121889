package validator

import (
	"errors"
	"testing"
)

func TestValidateDeposit(t *testing.T) {
	policy := NewPolicy(2)

	if err := policy.ValidateDeposit("100.50", "USD"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := policy.ValidateDeposit("100.505", "USD"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	for _, amount := range []string{"0", "0.00"} {
		if err := policy.ValidateDeposit(amount, "USD"); err != nil {
			t.Fatalf("amount %q matches the accepted pattern, got %v", amount, err)
		}
	}
	if err := policy.ValidateDeposit("100", "NGN"); !errors.Is(err, ErrUnsupportedCurrency) {
		t.Fatalf("expected ErrUnsupportedCurrency, got %v", err)
	}
	if err := policy.ValidateDeposit("100", "usd"); !errors.Is(err, ErrUnsupportedCurrency) {
		t.Fatalf("currency codes are case sensitive, got %v", err)
	}
}

func TestValidateWithdrawal(t *testing.T) {
	policy := NewPolicy(2)

	if err := policy.ValidateWithdrawal("50", "0xabc123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := policy.ValidateWithdrawal("5", "0xabc123"); !errors.Is(err, ErrAmountTooShort) {
		t.Fatalf("expected ErrAmountTooShort, got %v", err)
	}
	if err := policy.ValidateWithdrawal(" 5 ", "0xabc123"); !errors.Is(err, ErrAmountTooShort) {
		t.Fatalf("padding must not satisfy the minimum length, got %v", err)
	}
	if err := policy.ValidateWithdrawal("50", "  "); !errors.Is(err, ErrMissingWalletAddress) {
		t.Fatalf("expected ErrMissingWalletAddress, got %v", err)
	}
}

func TestValidateWithdrawalConfiguredMinimum(t *testing.T) {
	policy := NewPolicy(4)
	if err := policy.ValidateWithdrawal("500", "0xabc123"); !errors.Is(err, ErrAmountTooShort) {
		t.Fatalf("expected ErrAmountTooShort under the raised minimum, got %v", err)
	}
	if err := policy.ValidateWithdrawal("5000", "0xabc123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSupportedCurrency(t *testing.T) {
	for _, c := range []string{"USD", "EUR", "GBP"} {
		if !SupportedCurrency(c) {
			t.Fatalf("expected %s to be supported", c)
		}
	}
	if SupportedCurrency("JPY") {
		t.Fatalf("expected JPY to be unsupported")
	}
}
