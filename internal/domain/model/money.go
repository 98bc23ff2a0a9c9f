package model

import (
	"fmt"
	"math"
)

// Money is an amount in minor currency units (cents). All arithmetic stays in
// integers; conversion to floating point happens only at the API boundary.
type Money int64

// MoneyFromFloat converts a major-unit amount to cents, rounding half away from zero.
func MoneyFromFloat(v float64) Money {
	return Money(math.Round(v * 100))
}

// Float64 returns the amount in major units for JSON responses.
func (m Money) Float64() float64 {
	return float64(m) / 100
}

// String formats the amount with two decimal places.
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
