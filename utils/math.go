package utils

import "math"

// RoundFloat rounds a float64 to the specified number of decimal places
func RoundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// PercentOf returns round(part/whole*100) capped at 100. Zero or negative
// whole yields 0.
func PercentOf(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	pct := int(math.Round(float64(part) / float64(whole) * 100))
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
