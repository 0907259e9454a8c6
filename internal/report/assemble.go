package report

import (
	"math"

	"leadpulse/internal/analytics"
	"leadpulse/internal/models"
)

// Tables is the full report output: the four tables consumers persist or
// query. Forecast weeks in the summary are flagged so they are never taken
// for actuals.
type Tables struct {
	Summary  []models.SummaryRow  `json:"weekly_summary"`
	Channels []models.ChannelRow  `json:"channel_breakdown"`
	Regions  []models.RegionRow   `json:"region_breakdown"`
	Forecast []models.ForecastOut `json:"forecast"`
}

// Assemble merges aggregates and forecast rows into the output tables. Pure
// column selection and renaming; predicted counts are rounded into the count
// columns of the summary, with rates left at 0.
func Assemble(agg analytics.Aggregates, fc []models.ForecastRow) Tables {
	t := Tables{
		Summary:  make([]models.SummaryRow, 0, len(agg.Weekly)+len(fc)),
		Channels: make([]models.ChannelRow, 0, len(agg.Channels)),
		Regions:  make([]models.RegionRow, 0, len(agg.Regions)),
		Forecast: make([]models.ForecastOut, 0, len(fc)),
	}

	for _, m := range agg.Weekly {
		t.Summary = append(t.Summary, models.SummaryRow{
			Week:       m.Week.Format(models.DateLayout),
			NewLeads:   m.NewLeads,
			NewMQL:     m.NewMQL,
			NewSQL:     m.NewSQL,
			NewWon:     m.NewWon,
			MQLRate:    m.MQLRate,
			SQLRate:    m.SQLRate,
			WinRate:    m.WinRate,
			AvgLeadAge: m.AvgLeadAge,
		})
	}
	for _, f := range fc {
		t.Summary = append(t.Summary, models.SummaryRow{
			Week:       f.Week.Format(models.DateLayout),
			NewLeads:   int(math.Round(f.PredictedNewLeads)),
			NewWon:     int(math.Round(f.PredictedNewWon)),
			IsForecast: true,
		})
		t.Forecast = append(t.Forecast, models.ForecastOut{
			Week:              f.Week.Format(models.DateLayout),
			PredictedNewLeads: f.PredictedNewLeads,
			PredictedNewWon:   f.PredictedNewWon,
		})
	}

	for _, c := range agg.Channels {
		t.Channels = append(t.Channels, models.ChannelRow{
			Week:     c.Week.Format(models.DateLayout),
			Channel:  c.Name,
			NewLeads: c.NewLeads,
			NewMQL:   c.NewMQL,
			NewSQL:   c.NewSQL,
			NewWon:   c.NewWon,
			MQLRate:  c.MQLRate,
			SQLRate:  c.SQLRate,
			WinRate:  c.WinRate,
		})
	}
	for _, r := range agg.Regions {
		t.Regions = append(t.Regions, models.RegionRow{
			Week:     r.Week.Format(models.DateLayout),
			Region:   r.Name,
			NewLeads: r.NewLeads,
			NewMQL:   r.NewMQL,
			NewSQL:   r.NewSQL,
			NewWon:   r.NewWon,
			MQLRate:  r.MQLRate,
			SQLRate:  r.SQLRate,
			WinRate:  r.WinRate,
		})
	}
	return t
}
