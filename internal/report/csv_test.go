package report

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadpulse/internal/analytics"
	"leadpulse/internal/models"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportWritesFourTables(t *testing.T) {
	wk := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	agg := analytics.Aggregates{
		Weekly: []models.WeeklyMetrics{{Week: wk, NewLeads: 4, NewMQL: 2, MQLRate: 0.5}},
		Channels: []analytics.CategoryMetrics{
			{Name: "Ads", WeeklyMetrics: models.WeeklyMetrics{Week: wk, NewLeads: 4}},
		},
		Regions: []analytics.CategoryMetrics{
			{Name: "EMEA", WeeklyMetrics: models.WeeklyMetrics{Week: wk, NewLeads: 4}},
		},
	}
	fc := []models.ForecastRow{{Week: wk.AddDate(0, 0, 7), PredictedNewLeads: 4, PredictedNewWon: 0}}

	dir := t.TempDir()
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	counts, err := NewExporter(dir, log).Export(Assemble(agg, fc))
	require.NoError(t, err)

	assert.Equal(t, 2, counts[SummaryFile])
	assert.Equal(t, 1, counts[ChannelFile])
	assert.Equal(t, 1, counts[RegionFile])
	assert.Equal(t, 1, counts[ForecastFile])

	summary := readCSV(t, filepath.Join(dir, SummaryFile))
	require.Len(t, summary, 3) // header + actual + forecast
	assert.Equal(t, []string{"week", "new_leads", "new_mql", "new_sql", "new_won", "mql_rate", "sql_rate", "win_rate", "avg_lead_age", "is_forecast"}, summary[0])
	assert.Equal(t, "2024-01-01", summary[1][0])
	assert.Equal(t, "0.5", summary[1][5])
	assert.Equal(t, "false", summary[1][9])
	assert.Equal(t, "true", summary[2][9])

	channel := readCSV(t, filepath.Join(dir, ChannelFile))
	assert.Equal(t, []string{"week", "channel", "new_leads", "new_mql", "new_sql", "new_won", "mql_rate", "sql_rate", "win_rate"}, channel[0])

	forecast := readCSV(t, filepath.Join(dir, ForecastFile))
	assert.Equal(t, []string{"week", "predicted_new_leads", "predicted_new_won"}, forecast[0])
	assert.Equal(t, "2024-01-08", forecast[1][0])
}

func TestExportCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	_, err := NewExporter(dir, log).Export(Tables{})
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, SummaryFile))
	require.NoError(t, err)
}
