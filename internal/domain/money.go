package domain

import "math"

// RoundToCents rounds a monetary amount to two decimal places
func RoundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// LineTotal computes the rounded total for one order line
func LineTotal(price float64, quantity int) float64 {
	return RoundToCents(price * float64(quantity))
}
