package model

// RankedCandidate is one row of the pipeline output: a ticker that survived
// every filter, enriched with its indicator values and classified signal.
// Built once per run and immutable afterwards.
type RankedCandidate struct {
	Ticker     string
	Company    string // best-effort display name, may be empty
	DailyRSI   float64
	WeeklyRSI  float64
	Volatility float64
	Closes     []float64 // trailing daily closes for sparkline rendering
	Signal     Signal
}
