package universe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VolRadar/internal/cache"
	"VolRadar/internal/collector"
	"VolRadar/internal/model"
)

func barsFromCloses(closes []float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:  time.Now().AddDate(0, 0, -(len(closes) - i)),
			Open:  c, High: c, Low: c, Close: c,
			Volume: 1000,
		}
	}
	return bars
}

func zigzag(base, amp float64, n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = base + amp*float64(i%2)
	}
	return closes
}

func newSelector(fetcher collector.Fetcher, tickers []string, topN int) *Selector {
	return NewSelector(
		collector.NewCollector(fetcher),
		cache.New(600*time.Second),
		Params{Tickers: tickers, TopN: topN, RSIPeriod: 14, Lookback: "2y"},
	)
}

func TestRanking_EndToEnd(t *testing.T) {
	fetcher := &collector.MockFetcher{
		History: map[string][]model.OHLCV{
			"FLAT":  collector.GenerateBars(100, 0, 60),
			"RISE":  collector.GenerateBars(100, 1, 60),
			"SHORT": collector.GenerateBars(100, 0.5, 5),
		},
		Names: map[string]string{"FLAT": "Flat Industries"},
	}
	sel := newSelector(fetcher, []string{"RISE", "FLAT", "SHORT"}, 10)

	result, err := sel.Ranking(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2, "the short-history ticker must be excluded")

	assert.Equal(t, "FLAT", result[0].Ticker, "zero volatility ranks first")
	assert.Equal(t, 0.0, result[0].Volatility)
	assert.Equal(t, "Flat Industries", result[0].Company)

	rise := result[1]
	assert.Equal(t, "RISE", rise.Ticker)
	assert.Greater(t, rise.Volatility, 0.0)
	assert.Greater(t, rise.DailyRSI, 60.0)
	assert.Greater(t, rise.WeeklyRSI, 60.0)
	assert.Equal(t, model.SignalBuy, rise.Signal.Label)

	assert.LessOrEqual(t, len(rise.Closes), SparklineWindow)
	assert.NotEmpty(t, rise.Closes)
}

func TestRanking_HistoryFilters(t *testing.T) {
	fetcher := &collector.MockFetcher{
		History: map[string][]model.OHLCV{
			// Enough closes for volatility but below the 40-day floor.
			"THIN": collector.GenerateBars(100, 0, 30),
			// Passes the 40-day floor but spans fewer than 8 ISO weeks.
			"NARROW": collector.GenerateBars(100, 0, 40),
			"OK":     collector.GenerateBars(100, 0, 60),
		},
	}
	sel := newSelector(fetcher, []string{"THIN", "NARROW", "OK"}, 10)

	result, err := sel.Ranking(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "OK", result[0].Ticker)
}

func TestRanking_AscendingAndTruncated(t *testing.T) {
	fetcher := &collector.MockFetcher{
		History: map[string][]model.OHLCV{
			"CALM": barsFromCloses(zigzag(100, 0, 60)),
			"MID":  barsFromCloses(zigzag(100, 1, 60)),
			"WILD": barsFromCloses(zigzag(100, 5, 60)),
		},
	}
	sel := newSelector(fetcher, []string{"WILD", "MID", "CALM"}, 2)

	result, err := sel.Ranking(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2, "output truncates to N")
	assert.Equal(t, "CALM", result[0].Ticker)
	assert.Equal(t, "MID", result[1].Ticker)
	assert.LessOrEqual(t, result[0].Volatility, result[1].Volatility)
}

func TestRanking_StableTieOrder(t *testing.T) {
	flat := collector.GenerateBars(100, 0, 60)
	fetcher := &collector.MockFetcher{
		History: map[string][]model.OHLCV{"B_FLAT": flat, "A_FLAT": flat},
	}
	// Both have identical (zero) volatility: first-seen universe order wins.
	sel := newSelector(fetcher, []string{"B_FLAT", "A_FLAT"}, 10)

	result, err := sel.Ranking(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "B_FLAT", result[0].Ticker)
	assert.Equal(t, "A_FLAT", result[1].Ticker)
}

func TestRanking_NameLookupFailureKeepsCandidate(t *testing.T) {
	fetcher := &collector.MockFetcher{
		History: map[string][]model.OHLCV{"A": collector.GenerateBars(100, 0, 60)},
		NameErr: errors.New("quota exceeded"),
	}
	sel := newSelector(fetcher, []string{"A"}, 10)

	result, err := sel.Ranking(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Empty(t, result[0].Company)
}

func TestRanking_EmptyUniverseResult(t *testing.T) {
	fetcher := &collector.MockFetcher{History: map[string][]model.OHLCV{}}
	sel := newSelector(fetcher, []string{"A", "B"}, 10)

	_, err := sel.Ranking(context.Background())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRanking_EmptyResultNotCached(t *testing.T) {
	fetcher := &collector.MockFetcher{History: map[string][]model.OHLCV{}}
	sel := newSelector(fetcher, []string{"A"}, 10)

	_, err := sel.Ranking(context.Background())
	require.ErrorIs(t, err, ErrNoData)

	// Provider recovers; the next invocation must retry, not replay the miss.
	fetcher.History["A"] = collector.GenerateBars(100, 0, 60)
	result, err := sel.Ranking(context.Background())
	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestRefresh_BypassesCacheRead(t *testing.T) {
	fetcher := &collector.MockFetcher{
		History: map[string][]model.OHLCV{"A": collector.GenerateBars(100, 0, 60)},
	}
	sel := newSelector(fetcher, []string{"A"}, 10)

	_, err := sel.Ranking(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, fetcher.BatchCalls)

	refreshed, err := sel.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, refreshed, 1)
	assert.Equal(t, 2, fetcher.BatchCalls, "Refresh must recompute even with a live cache entry")

	// The refreshed result replaces the cached entry.
	_, err = sel.Ranking(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.BatchCalls)
}

func TestRanking_CachedWithinTTL(t *testing.T) {
	fetcher := &collector.MockFetcher{
		History: map[string][]model.OHLCV{"A": collector.GenerateBars(100, 0, 60)},
	}
	sel := newSelector(fetcher, []string{"A"}, 10)

	first, err := sel.Ranking(context.Background())
	require.NoError(t, err)
	second, err := sel.Ranking(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fetcher.BatchCalls, "second invocation must not contact the provider")

	sel.Invalidate()
	_, err = sel.Ranking(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.BatchCalls, "invalidation forces a fresh provider call")
}
