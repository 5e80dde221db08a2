package calculator

import "math"

// TradingDaysPerYear is the window and annualization base for volatility.
const TradingDaysPerYear = 252

// MinVolObservations is the minimum number of closes required before a
// volatility score is defined.
const MinVolObservations = 10

// AnnualizedVolatility computes the annualized standard deviation of log
// returns over the trailing TradingDaysPerYear closes. The standard deviation
// is the population form (divide by N). ok is false when the score is
// undefined: fewer than MinVolObservations closes, fewer than 2 log returns,
// or a non-finite result from bad prices. An undefined score must be excluded
// from ranking, never treated as zero.
func AnnualizedVolatility(closes []float64) (float64, bool) {
	if len(closes) < MinVolObservations {
		return 0, false
	}
	if len(closes) > TradingDaysPerYear {
		closes = closes[len(closes)-TradingDaysPerYear:]
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns = append(returns, math.Log(closes[i]/closes[i-1]))
	}
	if len(returns) < 2 {
		return 0, false
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var sq float64
	for _, r := range returns {
		d := r - mean
		sq += d * d
	}
	vol := math.Sqrt(sq/float64(len(returns))) * math.Sqrt(TradingDaysPerYear)
	if math.IsNaN(vol) || math.IsInf(vol, 0) {
		return 0, false
	}
	return vol, true
}
