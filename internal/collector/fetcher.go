package collector

import (
	"context"

	"VolRadar/internal/model"
)

// Fetcher defines the contract with the external market-data provider.
// FetchDailyHistory is the batch path: it returns whatever tickers it could
// resolve and omits the rest. FetchHistory is the isolated single-ticker
// path used as a fallback. FetchName is best-effort enrichment.
type Fetcher interface {
	FetchDailyHistory(ctx context.Context, tickers []string, lookback string) (map[string][]model.OHLCV, error)
	FetchHistory(ctx context.Context, ticker string, lookback string) ([]model.OHLCV, error)
	FetchName(ctx context.Context, ticker string) (string, error)
	Name() string
}
