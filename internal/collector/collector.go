package collector

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"VolRadar/internal/model"
)

// Collector retrieves and normalizes price history for a ticker universe.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// CollectUniverse fetches daily history for every ticker via the batch path,
// falls back to an isolated fetch for tickers the batch missed, and returns
// one normalized PriceSeries per ticker. A ticker that fails both paths maps
// to an empty series; no per-ticker failure escapes as an error.
func (c *Collector) CollectUniverse(ctx context.Context, tickers []string, lookback string) map[string]model.PriceSeries {
	raw, err := c.Fetcher.FetchDailyHistory(ctx, tickers, lookback)
	if err != nil {
		log.Warn().Err(err).Str("source", c.Fetcher.Name()).Msg("batch history fetch failed, falling back per ticker")
		raw = nil
	}

	out := make(map[string]model.PriceSeries, len(tickers))
	for _, tk := range tickers {
		bars := raw[tk]
		if len(bars) == 0 {
			fb, fbErr := c.Fetcher.FetchHistory(ctx, tk, lookback)
			if fbErr != nil {
				log.Debug().Err(fbErr).Str("ticker", tk).Msg("isolated history fetch failed, ticker dropped")
			} else {
				bars = fb
			}
		}
		out[tk] = Normalize(tk, bars)
	}
	return out
}

// Normalize turns raw provider bars into a clean PriceSeries: all-empty bars
// dropped, sorted ascending by date, one bar per calendar day (last wins).
// Missing sessions stay absent; no gaps are filled.
func Normalize(ticker string, bars []model.OHLCV) model.PriceSeries {
	cleaned := make([]model.OHLCV, 0, len(bars))
	for _, b := range bars {
		if b.Open == 0 && b.High == 0 && b.Low == 0 && b.Close == 0 {
			continue // data gap for that session
		}
		cleaned = append(cleaned, b)
	}
	sort.SliceStable(cleaned, func(i, j int) bool { return cleaned[i].Time.Before(cleaned[j].Time) })

	deduped := cleaned[:0]
	for _, b := range cleaned {
		if len(deduped) > 0 && sameDay(deduped[len(deduped)-1].Time, b.Time) {
			deduped[len(deduped)-1] = b
			continue
		}
		deduped = append(deduped, b)
	}

	return model.PriceSeries{Ticker: ticker, Bars: deduped, FetchedAt: time.Now()}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
