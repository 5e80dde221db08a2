package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultUniverse is the NIFTY50 constituent set the service ships with.
var DefaultUniverse = []string{
	"RELIANCE.NS", "TCS.NS", "HDFCBANK.NS", "INFY.NS", "ICICIBANK.NS", "KOTAKBANK.NS",
	"LT.NS", "ITC.NS", "SBIN.NS", "HCLTECH.NS", "AXISBANK.NS", "BHARTIARTL.NS", "BAJAJ-AUTO.NS",
	"ASIANPAINT.NS", "HINDUNILVR.NS", "MARUTI.NS", "SUNPHARMA.NS", "NTPC.NS", "M&M.NS",
	"BAJFINANCE.NS", "ULTRACEMCO.NS", "TITAN.NS", "POWERGRID.NS", "ONGC.NS", "HDFCLIFE.NS",
	"NESTLEIND.NS", "DIVISLAB.NS", "WIPRO.NS", "BRITANNIA.NS", "TECHM.NS", "COALINDIA.NS",
	"SBILIFE.NS", "ADANIENT.NS", "ADANIPORTS.NS", "TATASTEEL.NS", "BPCL.NS", "INDUSINDBK.NS",
	"GRASIM.NS", "EICHERMOT.NS", "JSWSTEEL.NS", "DRREDDY.NS", "TATAMOTORS.NS", "CIPLA.NS",
	"SHREECEM.NS", "HINDALCO.NS",
}

// Config holds all application configuration.
type Config struct {
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`
	DataSource struct {
		BaseURL string `yaml:"base_url"` // empty means Yahoo Finance
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Universe struct {
		Tickers []string `yaml:"tickers"`
	} `yaml:"universe"`
	Analysis struct {
		TopN      int    `yaml:"top_n"`
		RSIPeriod int    `yaml:"rsi_period"`
		Lookback  string `yaml:"lookback"`
	} `yaml:"analysis"`
	Cache struct {
		TTLSeconds int `yaml:"ttl_seconds"`
	} `yaml:"cache"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Log struct {
		Level       string `yaml:"level"`
		Format      string `yaml:"format"`
		FileEnabled bool   `yaml:"file_enabled"`
		FilePath    string `yaml:"file_path"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides, then fills in defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("DATASOURCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATASOURCE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil {
			cfg.Cache.TTLSeconds = ttl
		}
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if len(cfg.Universe.Tickers) == 0 {
		cfg.Universe.Tickers = DefaultUniverse
	}
	if cfg.Analysis.TopN == 0 {
		cfg.Analysis.TopN = 10
	}
	if cfg.Analysis.RSIPeriod == 0 {
		cfg.Analysis.RSIPeriod = 14
	}
	if cfg.Analysis.Lookback == "" {
		cfg.Analysis.Lookback = "2y"
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 600
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */10 * * * *"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "pretty"
	}
	if cfg.Log.FilePath == "" {
		cfg.Log.FilePath = "logs"
	}

	return cfg, nil
}

// Validate checks that the loaded configuration is usable.
func (c *Config) Validate() error {
	if len(c.Universe.Tickers) == 0 {
		return fmt.Errorf("universe.tickers must not be empty")
	}
	if c.Analysis.TopN <= 0 {
		return fmt.Errorf("analysis.top_n must be positive")
	}
	if c.Analysis.RSIPeriod <= 0 {
		return fmt.Errorf("analysis.rsi_period must be positive")
	}
	if c.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("cache.ttl_seconds must be positive")
	}
	return nil
}
