// internal/planner/money.go
package planner

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// floorProduct returns floor(base * multiplier) without binary float drift.
func floorProduct(base int64, multiplier float64) int64 {
	return decimal.NewFromInt(base).
		Mul(decimal.NewFromFloat(multiplier)).
		Floor().
		IntPart()
}

// half returns v/2 rounded to two decimals. Rounding works on the exact
// binary value, so 50.005 (stored just above) becomes 50.01.
func half(v float64) float64 {
	f, _ := strconv.ParseFloat(strconv.FormatFloat(v/2, 'f', 2, 64), 64)
	return f
}
