package calculator

import "math"

// RSISeries computes the Relative Strength Index for each point of the given
// closing prices using Wilder smoothing: up and down moves are averaged with
// a recursive EMA of alpha = 1/period, seeded by the first move. The result
// has one fewer point than the input since it derives from differences.
// When the averaged down-move is zero the value saturates at 100.
func RSISeries(closes []float64, period int) []float64 {
	if period <= 0 || len(closes) < 2 {
		return nil
	}
	alpha := 1.0 / float64(period)
	out := make([]float64, 0, len(closes)-1)

	var avgUp, avgDown float64
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		up, down := 0.0, 0.0
		if delta > 0 {
			up = delta
		} else {
			down = -delta
		}
		if i == 1 {
			avgUp, avgDown = up, down
		} else {
			avgUp = alpha*up + (1-alpha)*avgUp
			avgDown = alpha*down + (1-alpha)*avgDown
		}
		if avgDown == 0 {
			out = append(out, 100.0)
			continue
		}
		rs := avgUp / avgDown
		out = append(out, 100.0-100.0/(1.0+rs))
	}
	return out
}

// LatestRSI returns the most recent RSI value rounded to 2 decimal digits.
// ok is false when the input is too short to produce any value; callers must
// skip the ticker rather than fail the run.
func LatestRSI(closes []float64, period int) (float64, bool) {
	series := RSISeries(closes, period)
	if len(series) == 0 {
		return 0, false
	}
	return Round2(series[len(series)-1]), true
}

// Round2 rounds to 2 decimal digits.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
