// Package core holds the rental domain types shared by the forms, the
// backend clients and the views.
//
// This file contains functions for parsing monetary amounts from strings
// and converting between cents and decimal representations.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var maxCents = decimal.NewFromInt(math.MaxInt64)

// ParseAmount parses a positive decimal amount with at most two fraction
// digits.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Only
// ASCII digits are allowed, so exponents and signs are rejected.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount("12,5")   -> 12.5, nil
//	ParseAmount("12.345") -> ErrAmountPrecision
//	ParseAmount("0")      -> ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	intPart, fracPart, _ := strings.Cut(s, ".")
	if (intPart == "" && fracPart == "") || !asciiDigits(intPart) || !asciiDigits(fracPart) {
		return decimal.Zero, ErrInvalidAmount
	}
	if intPart == "" {
		s = "0" + s
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(s, "."))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	if len(strings.TrimRight(fracPart, "0")) > 2 {
		return decimal.Zero, ErrAmountPrecision
	}
	return d, nil
}

// ParseDecimalToCents converts a decimal string to cents. It applies the
// rules of ParseAmount, so the conversion is exact.
func ParseDecimalToCents(s string) (int64, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return 0, err
	}
	cents := d.Shift(2)
	if cents.GreaterThan(maxCents) {
		return 0, ErrInvalidAmount
	}
	return cents.IntPart(), nil
}

func asciiDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Amount returns the decimal value for display and wire purposes.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Amount() float64 {
	return float64(m.Cents) / 100.0
}

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// MarshalJSON encodes the amount as a plain JSON number (1234.5).
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(m.Amount(), 'f', -1, 64)), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*m = Money{}
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, b)
	}
	*m = Money{Cents: d.Shift(2).Round(0).IntPart()}
	return nil
}
