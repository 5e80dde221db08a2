package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"VolRadar/internal/cache"
	"VolRadar/internal/collector"
	"VolRadar/internal/config"
	"VolRadar/internal/logger"
	"VolRadar/internal/scheduler"
	"VolRadar/internal/universe"
	"VolRadar/internal/web"
)

func main() {
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	if err := logger.Init(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		FileEnabled: cfg.Log.FileEnabled,
		FilePath:    cfg.Log.FilePath,
	}); err != nil {
		log.Fatal().Err(err).Msg("init logger")
	}
	log.Info().Msg("VolRadar starting")

	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Info().Str("source", fetcher.Name()).Int("universe", len(cfg.Universe.Tickers)).Msg("data source ready")

	col := collector.NewCollector(fetcher)
	resultCache := cache.New(time.Duration(cfg.Cache.TTLSeconds) * time.Second)
	selector := universe.NewSelector(col, resultCache, universe.Params{
		Tickers:   cfg.Universe.Tickers,
		TopN:      cfg.Analysis.TopN,
		RSIPeriod: cfg.Analysis.RSIPeriod,
		Lookback:  cfg.Analysis.Lookback,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, selector)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatal().Err(err).Msg("register cron task")
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("WARM_ON_START") == "true" {
		log.Info().Msg("WARM_ON_START enabled, computing ranking now")
		go sched.RunNow()
	}

	srv := web.NewServer(selector, cfg.Server.ListenAddr)
	go func() {
		if err := srv.Run(ctx); err != nil {
			log.Error().Err(err).Msg("web server stopped")
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Info().Msg("shutdown signal received, stopping")
	case <-ctx.Done():
	}
	cancel()
	log.Info().Msg("VolRadar stopped")
}
