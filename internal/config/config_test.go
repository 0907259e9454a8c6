package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 4, cfg.ForecastHorizon)
	assert.Equal(t, 4, cfg.ForecastWindow)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LEADPULSE_FORECAST_HORIZON", "8")
	t.Setenv("LEADPULSE_LOG_LEVEL", "debug")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.ForecastHorizon)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestValidateRejectsBadForecastConfig(t *testing.T) {
	t.Setenv("LEADPULSE_FORECAST_HORIZON", "0")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("LEADPULSE_FORECAST_HORIZON", "4")
	t.Setenv("LEADPULSE_FORECAST_WINDOW", "-1")
	_, err = Load()
	require.Error(t, err)
}

func TestValidateRejectsEmptyOutputDir(t *testing.T) {
	cfg := Config{ForecastHorizon: 4, ForecastWindow: 4, OutputDir: "", HTTPTimeout: 1}
	require.Error(t, cfg.Validate())
}
