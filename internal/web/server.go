package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"VolRadar/internal/model"
	"VolRadar/internal/universe"
)

// Server exposes the ranked candidate list as an HTML card grid and a JSON
// API. It is a pure consumer of the pipeline output.
type Server struct {
	selector *universe.Selector
	http     *http.Server
}

// NewServer creates the web server on the given listen address.
func NewServer(selector *universe.Selector, addr string) *Server {
	s := &Server{selector: selector}

	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/api/ranking", s.handleRanking).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	s.http = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second, // a cold ranking waits on the provider
	}
	return s
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.http.Addr).Msg("web server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has("refresh") {
		s.selector.Invalidate()
		log.Info().Msg("cache invalidated by user refresh")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	candidates, err := s.selector.Ranking(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if errors.Is(err, universe.ErrNoData) {
		w.Write([]byte(renderNoData()))
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("ranking failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Write([]byte(renderPage(candidates)))
}

type rankingRow struct {
	Ticker     string    `json:"ticker"`
	Company    string    `json:"company,omitempty"`
	DailyRSI   float64   `json:"daily_rsi"`
	WeeklyRSI  float64   `json:"weekly_rsi"`
	Volatility float64   `json:"volatility"`
	Signal     string    `json:"signal"`
	Color      string    `json:"color"`
	Conflict   bool      `json:"conflict"`
	Closes     []float64 `json:"closes"`
}

func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.selector.Ranking(r.Context())
	w.Header().Set("Content-Type", "application/json")
	if errors.Is(err, universe.ErrNoData) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": "no data available, retry"})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("ranking failed")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
		return
	}

	rows := make([]rankingRow, len(candidates))
	for i, c := range candidates {
		rows[i] = toRow(c)
	}
	json.NewEncoder(w).Encode(rows)
}

func toRow(c model.RankedCandidate) rankingRow {
	return rankingRow{
		Ticker:     c.Ticker,
		Company:    c.Company,
		DailyRSI:   c.DailyRSI,
		WeeklyRSI:  c.WeeklyRSI,
		Volatility: c.Volatility,
		Signal:     string(c.Signal.Label),
		Color:      c.Signal.Color,
		Conflict:   c.Signal.Conflict,
		Closes:     c.Closes,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
