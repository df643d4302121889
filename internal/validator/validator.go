package validator

import (
	"errors"
	"strings"

	"github.com/DanielDerefaka/InvestmentPlatform/internal/money"
)

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrAmountTooShort       = errors.New("amount too short")
	ErrUnsupportedCurrency  = errors.New("unsupported currency")
	ErrMissingWalletAddress = errors.New("wallet address is required")
)

// Currencies accepted on deposit requests.
var supportedCurrencies = map[string]struct{}{
	"USD": {},
	"EUR": {},
	"GBP": {},
}

// Policy is the request-type-keyed validation policy for ledger submissions.
// Deposits are format-checked as strict two-decimal amounts; withdrawals keep
// the legacy minimum-length rule, carried as configuration rather than a
// constant.
type Policy struct {
	WithdrawalMinAmountLen int
}

func NewPolicy(withdrawalMinAmountLen int) Policy {
	return Policy{WithdrawalMinAmountLen: withdrawalMinAmountLen}
}

func (p Policy) ValidateDeposit(amount, currency string) error {
	if _, err := money.Parse(amount); err != nil {
		return ErrInvalidAmount
	}
	if !SupportedCurrency(currency) {
		return ErrUnsupportedCurrency
	}
	return nil
}

func (p Policy) ValidateWithdrawal(amount, walletAddress string) error {
	if len(strings.TrimSpace(amount)) < p.WithdrawalMinAmountLen {
		return ErrAmountTooShort
	}
	if strings.TrimSpace(walletAddress) == "" {
		return ErrMissingWalletAddress
	}
	return nil
}

func SupportedCurrency(currency string) bool {
	_, ok := supportedCurrencies[currency]
	return ok
}
