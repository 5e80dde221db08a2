package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VolRadar/internal/model"
)

func TestNormalize_DropsEmptyBarsAndSorts(t *testing.T) {
	d1 := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	d3 := d1.AddDate(0, 0, 2)
	raw := []model.OHLCV{
		{Time: d3, Open: 12, High: 12, Low: 12, Close: 12},
		{Time: d2}, // data gap, all zero
		{Time: d1, Open: 10, High: 10, Low: 10, Close: 10},
	}
	series := Normalize("X", raw)
	require.Len(t, series.Bars, 2)
	assert.Equal(t, 10.0, series.Bars[0].Close)
	assert.Equal(t, 12.0, series.Bars[1].Close)
	assert.True(t, series.Bars[0].Time.Before(series.Bars[1].Time))
}

func TestNormalize_DedupesByCalendarDay(t *testing.T) {
	d := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	raw := []model.OHLCV{
		{Time: d.Add(10 * time.Hour), Open: 1, High: 1, Low: 1, Close: 10},
		{Time: d.Add(16 * time.Hour), Open: 1, High: 1, Low: 1, Close: 11},
	}
	series := Normalize("X", raw)
	require.Len(t, series.Bars, 1)
	assert.Equal(t, 11.0, series.Bars[0].Close, "later bar of the same day wins")
}

func TestNormalize_EmptyInput(t *testing.T) {
	series := Normalize("X", nil)
	assert.True(t, series.Empty())
	assert.Equal(t, "X", series.Ticker)
}

func TestCollectUniverse_FallsBackPerTicker(t *testing.T) {
	fetcher := &MockFetcher{
		History: map[string][]model.OHLCV{
			"A": GenerateBars(100, 0.5, 20),
			"B": GenerateBars(200, 0.5, 20),
		},
		SingleOnly: map[string]bool{"B": true}, // batch misses B
	}
	col := NewCollector(fetcher)
	series := col.CollectUniverse(context.Background(), []string{"A", "B", "C"}, "2y")

	require.Len(t, series, 3)
	assert.Len(t, series["A"].Bars, 20)
	assert.Len(t, series["B"].Bars, 20, "B must come through the isolated fallback")
	assert.True(t, series["C"].Empty(), "unknown ticker degrades to an empty series")
}

func TestCollectUniverse_BatchFailureUsesFallbacks(t *testing.T) {
	fetcher := &MockFetcher{
		History:  map[string][]model.OHLCV{"A": GenerateBars(100, 0.5, 20)},
		BatchErr: errors.New("provider outage"),
	}
	col := NewCollector(fetcher)
	series := col.CollectUniverse(context.Background(), []string{"A", "B"}, "2y")

	assert.Len(t, series["A"].Bars, 20)
	assert.True(t, series["B"].Empty())
}
