package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DateLayout is the layout of every date in the config file and in request overrides.
const DateLayout = "2006-01-02"

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr      string  `yaml:"addr"`
		Mode      string  `yaml:"mode"`
		RateLimit float64 `yaml:"rate_limit"`
		RateBurst int     `yaml:"rate_burst"`
	} `yaml:"server"`
	Kraken struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"kraken"`
	Chart struct {
		Pair      string `yaml:"pair"`
		StartDate string `yaml:"start_date"`
		EndDate   string `yaml:"end_date"`
		Interval  int    `yaml:"interval"`
	} `yaml:"chart"`
	Schedule struct {
		Enabled      bool   `yaml:"enabled"`
		SnapshotCron string `yaml:"snapshot_cron"`
		LookbackDays int    `yaml:"lookback_days"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// LoadDotEnv loads a .env file from the working directory when present.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults apply.
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
		cfg.Server.Addr = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.Server.Mode = v
	}
	if v := os.Getenv("KRAKEN_BASE_URL"); v != "" {
		cfg.Kraken.BaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CHART_PAIR"); v != "" {
		cfg.Chart.Pair = v
	}
	if v := os.Getenv("CHART_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Chart.Interval = n
		}
	}
	if v := os.Getenv("SNAPSHOT_CRON"); v != "" {
		cfg.Schedule.SnapshotCron = v
		cfg.Schedule.Enabled = true
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8000"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = 1
	}
	if cfg.Server.RateBurst == 0 {
		cfg.Server.RateBurst = 5
	}
	if cfg.Kraken.BaseURL == "" {
		cfg.Kraken.BaseURL = "https://api.kraken.com"
	}
	if cfg.Kraken.TimeoutSeconds == 0 {
		cfg.Kraken.TimeoutSeconds = 30
	}
	if cfg.Chart.Pair == "" {
		cfg.Chart.Pair = "XXBTZUSD"
	}
	if cfg.Chart.StartDate == "" {
		cfg.Chart.StartDate = "2021-03-01"
	}
	if cfg.Chart.EndDate == "" {
		cfg.Chart.EndDate = "2021-04-01"
	}
	if cfg.Chart.Interval == 0 {
		cfg.Chart.Interval = 1440
	}
	if cfg.Schedule.SnapshotCron == "" {
		cfg.Schedule.SnapshotCron = "0 5 0 * * *"
	}
	if cfg.Schedule.LookbackDays == 0 {
		cfg.Schedule.LookbackDays = 30
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/candles.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and parse.
func (c *Config) Validate() error {
	start, err := c.ChartStart()
	if err != nil {
		return fmt.Errorf("chart.start_date: %w", err)
	}
	end, err := c.ChartEnd()
	if err != nil {
		return fmt.Errorf("chart.end_date: %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("chart.end_date must not be before chart.start_date")
	}
	if c.Chart.Interval <= 0 {
		return fmt.Errorf("chart.interval must be positive")
	}
	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return fmt.Errorf("server.rate_limit and server.rate_burst must not be negative")
	}
	if c.Schedule.LookbackDays <= 0 {
		return fmt.Errorf("schedule.lookback_days must be positive")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console")
	}
	return nil
}

// ChartStart parses the configured start date as UTC midnight.
func (c *Config) ChartStart() (time.Time, error) {
	return time.Parse(DateLayout, c.Chart.StartDate)
}

// ChartEnd parses the configured end date as UTC midnight.
func (c *Config) ChartEnd() (time.Time, error) {
	return time.Parse(DateLayout, c.Chart.EndDate)
}

// KrakenTimeout is the client deadline for upstream calls.
func (c *Config) KrakenTimeout() time.Duration {
	return time.Duration(c.Kraken.TimeoutSeconds) * time.Second
}
