// Package mathutil provides small numeric helpers shared by the calculator.
package mathutil

import "math"

// Round2 rounds a value to two decimals for currency and yield presentation.
func Round2(val float64) float64 {
	return math.Round(val*100) / 100
}

// SafeDiv divides numerator by denominator, returning 0 when the denominator
// is zero. Degenerate table entries (zero plants, zero yield) must produce
// zero per-unit metrics rather than Inf or NaN.
func SafeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// WithinTolerance reports whether two values agree within tolerance.
func WithinTolerance(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
