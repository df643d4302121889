package money

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Deposit amounts are decimal strings with at most two fractional digits,
// no sign and no bare leading dot. Every string the pattern accepts is a
// valid amount, zero included.
var amountPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// Parse validates raw against the strict deposit amount format and returns it
// as a decimal.
func Parse(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if !amountPattern.MatchString(trimmed) {
		return decimal.Zero, ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

// Negate returns the signed string form used when debiting a cached balance.
func Negate(amount decimal.Decimal) string {
	return amount.Neg().String()
}
