package util

import "math"

// RoundTo rounds half away from zero to the given number of decimal places
func RoundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))

	return math.Round(value*scale) / scale
}
