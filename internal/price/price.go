// internal/price/price.go
//
// Price arithmetic and display formatting.  The products API reports prices
// in integer pence; everything user-facing works in pounds.

package price

import (
	"math"
	"strconv"
)

// FromPence converts an integer pence amount into pounds.
func FromPence(p int64) float64 {
	return float64(p) / 100
}

// Format renders a pound amount for display.  Whole amounts drop the
// decimals ("3"), fractional amounts always carry two places ("3.50").
func Format(amount float64) string {
	if amount == math.Trunc(amount) {
		return strconv.FormatFloat(amount, 'f', 0, 64)
	}
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
