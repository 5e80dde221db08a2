package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"VolRadar/internal/universe"
)

// Scheduler keeps the ranking warm by recomputing it on a cron, so that page
// loads inside the cache TTL never wait on the provider.
type Scheduler struct {
	Cron     *cron.Cron
	Selector *universe.Selector
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, selector *universe.Selector) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Selector: selector,
		Ctx:      ctx,
	}
}

// Register adds the periodic refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the refresh task immediately (start-up warming).
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Info().Msg("running scheduled ranking refresh")
	if _, err := s.Selector.Refresh(s.Ctx); err != nil {
		if errors.Is(err, universe.ErrNoData) {
			log.Warn().Msg("scheduled refresh produced no candidates")
			return
		}
		log.Error().Err(err).Msg("scheduled refresh failed")
	}
}
