package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadpulse/internal/analytics"
	"leadpulse/internal/models"
)

func TestAssembleMarksForecastRows(t *testing.T) {
	wk := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	agg := analytics.Aggregates{
		Weekly: []models.WeeklyMetrics{
			{Week: wk, NewLeads: 10, NewMQL: 5, MQLRate: 0.5},
		},
	}
	fc := []models.ForecastRow{
		{Week: wk.AddDate(0, 0, 7), PredictedNewLeads: 12.4, PredictedNewWon: 1.6},
	}

	tables := Assemble(agg, fc)
	require.Len(t, tables.Summary, 2)

	actual, predicted := tables.Summary[0], tables.Summary[1]
	assert.False(t, actual.IsForecast)
	assert.Equal(t, "2024-01-01", actual.Week)
	assert.Equal(t, 0.5, actual.MQLRate)

	assert.True(t, predicted.IsForecast)
	assert.Equal(t, "2024-01-08", predicted.Week)
	assert.Equal(t, 12, predicted.NewLeads, "predictions round into count columns")
	assert.Equal(t, 2, predicted.NewWon)
	assert.Zero(t, predicted.MQLRate)

	require.Len(t, tables.Forecast, 1)
	assert.Equal(t, 12.4, tables.Forecast[0].PredictedNewLeads)
}

func TestAssembleBreakdownColumns(t *testing.T) {
	wk := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	agg := analytics.Aggregates{
		Channels: []analytics.CategoryMetrics{
			{Name: "Ads", WeeklyMetrics: models.WeeklyMetrics{Week: wk, NewLeads: 3}},
		},
		Regions: []analytics.CategoryMetrics{
			{Name: "EMEA", WeeklyMetrics: models.WeeklyMetrics{Week: wk, NewLeads: 3}},
		},
	}
	tables := Assemble(agg, nil)
	require.Len(t, tables.Channels, 1)
	assert.Equal(t, "Ads", tables.Channels[0].Channel)
	require.Len(t, tables.Regions, 1)
	assert.Equal(t, "EMEA", tables.Regions[0].Region)
	assert.Empty(t, tables.Forecast)
}

func TestAssembleEmptyAggregates(t *testing.T) {
	tables := Assemble(analytics.Aggregates{}, nil)
	assert.Empty(t, tables.Summary)
	assert.Empty(t, tables.Channels)
	assert.Empty(t, tables.Regions)
	assert.Empty(t, tables.Forecast)
}
