package model

import "time"

// OHLCV represents a single candlestick bar as delivered by the provider.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds cleaned daily bars for one ticker, sorted ascending by
// date with no duplicate dates. An empty series means the ticker is unusable
// and downstream stages must skip it.
type PriceSeries struct {
	Ticker    string
	Bars      []OHLCV
	FetchedAt time.Time
}

// Empty reports whether the series carries no usable bars.
func (s PriceSeries) Empty() bool { return len(s.Bars) == 0 }

// Closes returns the closing prices in date order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}
