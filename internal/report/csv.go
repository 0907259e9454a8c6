package report

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"leadpulse/internal/models"
)

// File names of the four output tables inside the output directory.
const (
	SummaryFile  = "weekly_summary.csv"
	ChannelFile  = "channel_breakdown.csv"
	RegionFile   = "region_breakdown.csv"
	ForecastFile = "forecast.csv"
)

// Exporter persists the assembled tables as CSV files.
type Exporter struct {
	outDir string
	log    *slog.Logger
}

func NewExporter(outDir string, log *slog.Logger) *Exporter {
	return &Exporter{outDir: outDir, log: log}
}

// Export writes all four tables and returns the row count per file.
func (e *Exporter) Export(t Tables) (map[string]int, error) {
	if err := os.MkdirAll(e.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	counts := map[string]int{
		SummaryFile:  len(t.Summary),
		ChannelFile:  len(t.Channels),
		RegionFile:   len(t.Regions),
		ForecastFile: len(t.Forecast),
	}

	if err := e.write(SummaryFile,
		[]string{"week", "new_leads", "new_mql", "new_sql", "new_won", "mql_rate", "sql_rate", "win_rate", "avg_lead_age", "is_forecast"},
		summaryRecords(t.Summary)); err != nil {
		return nil, err
	}
	if err := e.write(ChannelFile,
		[]string{"week", "channel", "new_leads", "new_mql", "new_sql", "new_won", "mql_rate", "sql_rate", "win_rate"},
		channelRecords(t.Channels)); err != nil {
		return nil, err
	}
	if err := e.write(RegionFile,
		[]string{"week", "region", "new_leads", "new_mql", "new_sql", "new_won", "mql_rate", "sql_rate", "win_rate"},
		regionRecords(t.Regions)); err != nil {
		return nil, err
	}
	if err := e.write(ForecastFile,
		[]string{"week", "predicted_new_leads", "predicted_new_won"},
		forecastRecords(t.Forecast)); err != nil {
		return nil, err
	}

	e.log.Info("report exported", slog.String("dir", e.outDir), slog.Int("summary_rows", counts[SummaryFile]))
	return counts, nil
}

func (e *Exporter) write(name string, header []string, records [][]string) error {
	path := filepath.Join(e.outDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header of %s: %w", name, err)
	}
	for i, rec := range records {
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row %d of %s: %w", i, name, err)
		}
	}
	w.Flush()
	return w.Error()
}

func summaryRecords(rows []models.SummaryRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Week,
			strconv.Itoa(r.NewLeads), strconv.Itoa(r.NewMQL), strconv.Itoa(r.NewSQL), strconv.Itoa(r.NewWon),
			ftoa(r.MQLRate), ftoa(r.SQLRate), ftoa(r.WinRate), ftoa(r.AvgLeadAge),
			strconv.FormatBool(r.IsForecast),
		})
	}
	return out
}

func channelRecords(rows []models.ChannelRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Week, r.Channel,
			strconv.Itoa(r.NewLeads), strconv.Itoa(r.NewMQL), strconv.Itoa(r.NewSQL), strconv.Itoa(r.NewWon),
			ftoa(r.MQLRate), ftoa(r.SQLRate), ftoa(r.WinRate),
		})
	}
	return out
}

func regionRecords(rows []models.RegionRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Week, r.Region,
			strconv.Itoa(r.NewLeads), strconv.Itoa(r.NewMQL), strconv.Itoa(r.NewSQL), strconv.Itoa(r.NewWon),
			ftoa(r.MQLRate), ftoa(r.SQLRate), ftoa(r.WinRate),
		})
	}
	return out
}

func forecastRecords(rows []models.ForecastOut) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.Week, ftoa(r.PredictedNewLeads), ftoa(r.PredictedNewWon)})
	}
	return out
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
