package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"VolRadar/internal/model"
)

// yahooBatchWorkers bounds the parallel per-symbol calls of the batch path.
const yahooBatchWorkers = 8

// YahooFetcher implements Fetcher using the Yahoo Finance chart API. The API
// is per-symbol, so the batch path fans out over a bounded worker pool.
type YahooFetcher struct {
	Client *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				ShortName string `json:"shortName"`
				LongName  string `json:"longName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol, interval, rng string) (*yahooChart, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=%s&range=%s",
		url.PathEscape(symbol), interval, rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}
	return &chart, nil
}

func chartBars(chart *yahooChart) []model.OHLCV {
	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	quote := result.Indicators.Quote[0]
	// A malformed payload can carry quote arrays shorter than the timestamp
	// array; clamp to the shortest.
	n := len(result.Timestamp)
	for _, l := range []int{len(quote.Open), len(quote.High), len(quote.Low), len(quote.Close), len(quote.Volume)} {
		if l < n {
			n = l
		}
	}
	bars := make([]model.OHLCV, 0, n)
	for i, ts := range result.Timestamp[:n] {
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0),
			Open:   toFloat(quote.Open[i]),
			High:   toFloat(quote.High[i]),
			Low:    toFloat(quote.Low[i]),
			Close:  toFloat(quote.Close[i]),
			Volume: toFloat(quote.Volume[i]),
		})
	}
	return bars
}

// FetchHistory fetches daily bars for one ticker over the lookback range
// (Yahoo range syntax, e.g. "2y").
func (f *YahooFetcher) FetchHistory(ctx context.Context, ticker string, lookback string) ([]model.OHLCV, error) {
	chart, err := f.fetchChart(ctx, ticker, "1d", lookback)
	if err != nil {
		return nil, err
	}
	bars := chartBars(chart)
	if len(bars) == 0 {
		return nil, fmt.Errorf("yahoo: empty history for %s", ticker)
	}
	return bars, nil
}

// FetchDailyHistory fans FetchHistory out over a bounded worker pool. Tickers
// that fail are omitted from the result rather than failing the batch.
func (f *YahooFetcher) FetchDailyHistory(ctx context.Context, tickers []string, lookback string) (map[string][]model.OHLCV, error) {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make(map[string][]model.OHLCV, len(tickers))
		sem = make(chan struct{}, yahooBatchWorkers)
	)
	for _, tk := range tickers {
		wg.Add(1)
		go func(tk string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			bars, err := f.FetchHistory(ctx, tk, lookback)
			if err != nil {
				return
			}
			mu.Lock()
			out[tk] = bars
			mu.Unlock()
		}(tk)
	}
	wg.Wait()
	return out, nil
}

// FetchName returns the display name carried in the chart metadata.
func (f *YahooFetcher) FetchName(ctx context.Context, ticker string) (string, error) {
	chart, err := f.fetchChart(ctx, ticker, "1d", "1d")
	if err != nil {
		return "", err
	}
	meta := chart.Chart.Result[0].Meta
	if meta.ShortName != "" {
		return meta.ShortName, nil
	}
	return meta.LongName, nil
}
