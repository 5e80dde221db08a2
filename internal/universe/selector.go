package universe

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog/log"

	"VolRadar/internal/cache"
	"VolRadar/internal/calculator"
	"VolRadar/internal/collector"
	"VolRadar/internal/model"
	"VolRadar/internal/strategy"
)

// ErrNoData is returned when zero tickers survive the pipeline, e.g. during
// a provider outage. Callers must surface it as a retryable "no data"
// condition, distinct from a ranking that is merely shorter than N.
var ErrNoData = errors.New("universe: no usable tickers")

const (
	// MinDailyObservations is the daily history floor for candidacy.
	MinDailyObservations = 40
	// MinWeeklyObservations is the weekly history floor for candidacy.
	MinWeeklyObservations = 8
	// SparklineWindow is how many trailing closes each candidate retains.
	SparklineWindow = 40
)

// Params holds the fixed configuration of one Selector.
type Params struct {
	Tickers   []string
	TopN      int
	RSIPeriod int
	Lookback  string
}

// Selector runs the full analysis pipeline over a fixed ticker universe and
// produces the top-N least-volatile candidates with their RSI signals.
type Selector struct {
	collector *collector.Collector
	cache     *cache.ResultCache
	params    Params
}

// NewSelector creates a Selector.
func NewSelector(col *collector.Collector, rc *cache.ResultCache, params Params) *Selector {
	return &Selector{collector: col, cache: rc, params: params}
}

// Ranking returns the current ranked candidate list, serving from the result
// cache when a fresh entry exists. An empty pipeline outcome is not cached so
// that a retry can succeed as soon as the provider recovers.
func (s *Selector) Ranking(ctx context.Context) ([]model.RankedCandidate, error) {
	key := cache.Key(s.params.Tickers)
	if result, ok := s.cache.Get(key); ok {
		log.Debug().Int("candidates", len(result)).Msg("ranking served from cache")
		return result, nil
	}

	result, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Put(key, result)
	return result, nil
}

// Refresh recomputes the ranking and replaces the cached entry regardless of
// its age. The background refresher uses this so the entry's TTL restarts on
// every tick instead of racing the cron against the stored timestamp.
func (s *Selector) Refresh(ctx context.Context) ([]model.RankedCandidate, error) {
	result, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Put(cache.Key(s.params.Tickers), result)
	return result, nil
}

// Invalidate force-clears the result cache, e.g. on a user refresh.
func (s *Selector) Invalidate() {
	s.cache.Invalidate()
}

type volScore struct {
	ticker string
	vol    float64
}

func (s *Selector) compute(ctx context.Context) ([]model.RankedCandidate, error) {
	series := s.collector.CollectUniverse(ctx, s.params.Tickers, s.params.Lookback)

	// Rank every usable ticker ascending by volatility. Iterating the
	// configured ticker list keeps ties in first-seen order under the
	// stable sort.
	scores := make([]volScore, 0, len(s.params.Tickers))
	for _, tk := range s.params.Tickers {
		sr := series[tk]
		if sr.Empty() {
			continue
		}
		vol, ok := calculator.AnnualizedVolatility(sr.Closes())
		if !ok {
			continue
		}
		scores = append(scores, volScore{ticker: tk, vol: vol})
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].vol < scores[j].vol })

	selected := make([]model.RankedCandidate, 0, s.params.TopN)
	for _, sc := range scores {
		if len(selected) >= s.params.TopN {
			break
		}
		sr := series[sc.ticker]
		closes := sr.Closes()
		if len(closes) < MinDailyObservations {
			continue
		}
		weekly := calculator.ResampleWeeklyLast(sr.Bars)
		if len(weekly) < MinWeeklyObservations {
			continue
		}
		weeklyCloses := make([]float64, len(weekly))
		for i, b := range weekly {
			weeklyCloses[i] = b.Close
		}

		dailyRSI, ok := calculator.LatestRSI(closes, s.params.RSIPeriod)
		if !ok {
			continue
		}
		weeklyRSI, ok := calculator.LatestRSI(weeklyCloses, s.params.RSIPeriod)
		if !ok {
			continue
		}

		name, err := s.collector.Fetcher.FetchName(ctx, sc.ticker)
		if err != nil {
			log.Debug().Err(err).Str("ticker", sc.ticker).Msg("name lookup failed")
			name = ""
		}

		tail := closes
		if len(tail) > SparklineWindow {
			tail = tail[len(tail)-SparklineWindow:]
		}

		selected = append(selected, model.RankedCandidate{
			Ticker:     sc.ticker,
			Company:    name,
			DailyRSI:   dailyRSI,
			WeeklyRSI:  weeklyRSI,
			Volatility: sc.vol,
			Closes:     tail,
			Signal:     strategy.Classify(dailyRSI, weeklyRSI),
		})
	}

	if len(selected) == 0 {
		log.Warn().Int("universe", len(s.params.Tickers)).Msg("pipeline produced no candidates")
		return nil, ErrNoData
	}

	// Selection already walks ascending volatility; re-affirm the final order
	// and size.
	sort.SliceStable(selected, func(i, j int) bool { return selected[i].Volatility < selected[j].Volatility })
	if len(selected) > s.params.TopN {
		selected = selected[:s.params.TopN]
	}

	log.Info().
		Int("universe", len(s.params.Tickers)).
		Int("ranked", len(scores)).
		Int("selected", len(selected)).
		Msg("universe analysis complete")
	return selected, nil
}
