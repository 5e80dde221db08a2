package collector

import (
	"context"
	"fmt"
	"time"

	"VolRadar/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	History    map[string][]model.OHLCV
	Names      map[string]string
	BatchErr   error
	NameErr    error
	BatchCalls int
	SingleOnly map[string]bool // tickers served only by the isolated path
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyHistory(_ context.Context, tickers []string, _ string) (map[string][]model.OHLCV, error) {
	m.BatchCalls++
	if m.BatchErr != nil {
		return nil, m.BatchErr
	}
	out := make(map[string][]model.OHLCV, len(tickers))
	for _, tk := range tickers {
		if m.SingleOnly[tk] {
			continue
		}
		if bars, ok := m.History[tk]; ok {
			out[tk] = bars
		}
	}
	return out, nil
}

func (m *MockFetcher) FetchHistory(_ context.Context, ticker string, _ string) ([]model.OHLCV, error) {
	bars, ok := m.History[ticker]
	if !ok {
		return nil, fmt.Errorf("mock: no history for %s", ticker)
	}
	return bars, nil
}

func (m *MockFetcher) FetchName(_ context.Context, ticker string) (string, error) {
	if m.NameErr != nil {
		return "", m.NameErr
	}
	return m.Names[ticker], nil
}

// GenerateBars fabricates count daily bars walking from basePrice by step per
// day, ending yesterday. Useful for deterministic pipeline tests.
func GenerateBars(basePrice, step float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice + step*float64(i)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
