/*
Package generic provides the attendance-to-pay engine primitives.

PURPOSE:
  This package contains the shift-agnostic building blocks of the payroll
  engine: the clock-time parser, midnight-safe interval arithmetic, the
  overtime rounding policy and the money helpers used by the aggregator.
  Nothing here knows about departments, shift codes or pay modes; those
  live in the shift, attendance and payroll packages.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: decimal currency values (never float64)
  - Hours: conversion from whole minutes to decimal hours
  - Floor: presentation-only truncation to whole currency units

DESIGN PRINCIPLES:
  1. Purity: every function is side-effect free and deterministic
  2. Precision: uses decimal.Decimal so sums stay exact until display
  3. Degrade, don't fail: missing or malformed input yields "no value"

SEE ALSO:
  - clock.go: ClockTime and the time parser
  - interval.go: elapsed / late / overtime arithmetic
  - overtime.go: step-rounding policy
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY
// =============================================================================

// Money is a currency amount. Internal sums stay fractional.
type Money = decimal.Decimal

var minutesPerHour = decimal.NewFromInt(60)

// NewMoneyFromInt converts a whole currency amount to Money.
func NewMoneyFromInt(v int64) Money { return decimal.NewFromInt(v) }

// ParseDecimalOrZero parses s, returning zero on malformed input.
func ParseDecimalOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Hours converts whole minutes to decimal hours.
func Hours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(minutesPerHour)
}

// Floor truncates to whole currency units for display.
func Floor(m Money) int64 {
	return m.Floor().IntPart()
}

// MaxZero clamps negative values to zero.
func MaxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
