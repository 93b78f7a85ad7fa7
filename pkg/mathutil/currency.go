// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/shopspring/decimal"
)

// RoundToCents rounds a value to two decimals, i.e. to represent real currency.
// Halves round away from zero (0.125 -> 0.13, -0.125 -> -0.13).
func RoundToCents(val float64) float64 {
	return Round(val, constants.CurrencyPlaces)
}

// Round rounds val to the given number of decimal places, halves away from zero.
// The value is taken at its shortest decimal representation, so 1.005 rounds
// to 1.01 rather than being perturbed by binary error.
func Round(val float64, places int32) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0
	}
	return decimal.NewFromFloat(val).Round(places).InexactFloat64()
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// FloorZero clamps negative values to zero.
func FloorZero(val float64) float64 {
	return Max(val, 0)
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// Sum adds up a list of values.
func Sum(values ...float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
