// Package core implements the pay-calculation and fortnight-aggregation
// engine: money handling, day classification, rate math, period boundaries,
// shift aggregation, and savings-goal accounting. Everything in this package
// is a pure function of its inputs.
package core

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in cents. Calculations stay in integer cents to avoid
// floating-point drift; dollars are a display concern.
type Money struct {
	Cents int64
}

// FromDollars converts a dollar amount to cents with half-up rounding.
func FromDollars(d float64) Money {
	if d < 0 {
		return Money{Cents: -int64(math.Floor(-d*100 + 0.5))}
	}
	return Money{Cents: int64(math.Floor(d*100 + 0.5))}
}

// Dollars returns the dollar value for display and rate math.
func (m Money) Dollars() float64 {
	return float64(m.Cents) / 100.0
}

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }

func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }

func (m Money) IsZero() bool { return m.Cents == 0 }

// MarshalJSON emits the dollar value with two decimals, matching the wire
// shape consumers expect for currency fields.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(m.Dollars(), 'f', 2, 64)), nil
}

// UnmarshalJSON accepts a JSON number of dollars and stores cents, half-up on
// fractional sub-cent input.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Validationf("invalid amount %q", s)
	}
	*m = FromDollars(d)
	return nil
}

// ParseDecimalToCents converts a decimal string to cents with half-up
// rounding on the third decimal place. Accepts both dot and comma separators.
// Negative values are rejected; zero is allowed (some fields are >= 0).
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, Validationf("empty amount")
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, Validationf("amount must be a plain positive decimal")
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, Validationf("malformed amount %q", s)
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, Validationf("malformed amount %q", s)
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, Validationf("amount out of range")
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, Validationf("amount out of range")
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}
