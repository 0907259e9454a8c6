package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	InputCSV        string        `envconfig:"INPUT_CSV" default:"crm_leads.csv"`
	OutputDir       string        `envconfig:"OUTPUT_DIR" default:"output"`
	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`
	ForecastHorizon int           `envconfig:"FORECAST_HORIZON" default:"4"`
	ForecastWindow  int           `envconfig:"FORECAST_WINDOW" default:"4"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the LEADPULSE_* environment and validates it. Validation
// failures are fatal for the caller; the pipeline never runs on a bad config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("leadpulse", &cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.ForecastHorizon <= 0 {
		return fmt.Errorf("forecast horizon must be > 0, got %d", c.ForecastHorizon)
	}
	if c.ForecastWindow <= 0 {
		return fmt.Errorf("forecast window must be > 0, got %d", c.ForecastWindow)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output dir must not be empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0, got %s", c.HTTPTimeout)
	}
	return nil
}

func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
