package forecast

import (
	"math"

	"github.com/shopspring/decimal"
)

// roundCount rounds half to even and floors the result at zero.
func roundCount(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	r := decimal.NewFromFloat(v).RoundBank(0).IntPart()
	if r < 0 {
		return 0
	}
	return int(r)
}

// trailingMean averages the last window values, or all of them when the
// slice is shorter than window or window is not positive. Non-finite values
// are left out of both the sum and the count.
func trailingMean(values []float64, window int) decimal.Decimal {
	if window > 0 && len(values) > window {
		values = values[len(values)-window:]
	}
	if len(values) == 0 {
		return decimal.Zero
	}

	sum := decimal.Zero
	n := 0
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(v))
		n++
	}
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}

// meanCount is trailingMean rounded half to even and floored at zero.
func meanCount(values []float64, window int) int {
	r := trailingMean(values, window).RoundBank(0).IntPart()
	if r < 0 {
		return 0
	}
	return int(r)
}

func allFinite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
