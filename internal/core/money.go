// Package core provides money parsing and handling utilities.
//
// Amounts are kept as decimal values end to end; float64 is never used for
// arithmetic so sums of historical rows stay exact.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts user or stored text into a decimal amount.
//
// Only a dot is accepted as the decimal separator. A comma is ambiguous
// (10,000 vs 12,34), so any comma makes the input invalid. No sign or range
// constraint is applied here; callers that need a positive value use
// ParsePositiveAmount.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount("-3")     -> -3, nil
//	ParseAmount("10,000") -> 0, ErrInvalidAmount
//	ParseAmount("abc")    -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.Contains(s, ",") {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParsePositiveAmount is ParseAmount restricted to values greater than zero.
func ParsePositiveAmount(s string) (decimal.Decimal, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatAmount renders an amount for storage: plain decimal text, no symbol.
func FormatAmount(d decimal.Decimal) string {
	return d.String()
}

// DisplayAmount renders an amount for the user with the configured symbol.
func DisplayAmount(symbol string, d decimal.Decimal) string {
	return symbol + d.StringFixed(2)
}
