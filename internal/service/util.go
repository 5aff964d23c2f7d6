package service

import (
	"math"

	"github.com/shopspring/decimal"
)

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// money renders a decimal amount as a JSON number with two decimals.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
