package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"VolRadar/internal/model"
)

// RESTFetcher implements Fetcher against a self-hosted bars REST API, used
// when a deployment cannot reach Yahoo directly.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string) *RESTFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape from the bars API.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (f *RESTFetcher) get(ctx context.Context, endpoint string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("rest fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("rest fetch: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("rest decode: %w", err)
	}
	return nil
}

// FetchHistory fetches daily bars for one ticker.
func (f *RESTFetcher) FetchHistory(ctx context.Context, ticker string, lookback string) ([]model.OHLCV, error) {
	endpoint := fmt.Sprintf("%s/api/v1/history?symbol=%s&range=%s&interval=1d",
		f.BaseURL, url.QueryEscape(ticker), url.QueryEscape(lookback))
	var raw []restBar
	if err := f.get(ctx, endpoint, &raw); err != nil {
		return nil, err
	}
	bars := make([]model.OHLCV, len(raw))
	for i, rb := range raw {
		bars[i] = model.OHLCV{
			Time:   time.Unix(rb.Timestamp, 0),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: rb.Volume,
		}
	}
	return bars, nil
}

// FetchDailyHistory tries the API's multi-symbol endpoint first and falls
// back to per-ticker calls when the API does not support it.
func (f *RESTFetcher) FetchDailyHistory(ctx context.Context, tickers []string, lookback string) (map[string][]model.OHLCV, error) {
	endpoint := fmt.Sprintf("%s/api/v1/history/batch?range=%s&interval=1d", f.BaseURL, url.QueryEscape(lookback))
	for _, tk := range tickers {
		endpoint += "&symbol=" + url.QueryEscape(tk)
	}
	var raw map[string][]restBar
	if err := f.get(ctx, endpoint, &raw); err == nil {
		out := make(map[string][]model.OHLCV, len(raw))
		for tk, bars := range raw {
			converted := make([]model.OHLCV, len(bars))
			for i, rb := range bars {
				converted[i] = model.OHLCV{
					Time:   time.Unix(rb.Timestamp, 0),
					Open:   rb.Open,
					High:   rb.High,
					Low:    rb.Low,
					Close:  rb.Close,
					Volume: rb.Volume,
				}
			}
			out[tk] = converted
		}
		return out, nil
	}

	out := make(map[string][]model.OHLCV, len(tickers))
	for _, tk := range tickers {
		bars, err := f.FetchHistory(ctx, tk, lookback)
		if err != nil {
			continue
		}
		out[tk] = bars
	}
	return out, nil
}

// FetchName looks up the display name for a ticker.
func (f *RESTFetcher) FetchName(ctx context.Context, ticker string) (string, error) {
	endpoint := fmt.Sprintf("%s/api/v1/symbols/%s", f.BaseURL, url.PathEscape(ticker))
	var result struct {
		Name string `json:"name"`
	}
	if err := f.get(ctx, endpoint, &result); err != nil {
		return "", err
	}
	return result.Name, nil
}
