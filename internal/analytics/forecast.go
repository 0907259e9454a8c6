package analytics

import (
	"leadpulse/internal/models"
)

// Forecast extends the weekly series by horizon weeks using a trailing
// moving average. Each step averages the last window values of the extended
// series, so later predictions feed on earlier ones. With fewer than window
// weeks of history the average covers whatever exists; an empty series
// yields no forecast rows.
//
// Inputs are non-negative counts and averaging preserves that, so the
// predictions need no clamping.
func Forecast(series []models.WeeklyMetrics, horizon, window int) []models.ForecastRow {
	if len(series) == 0 || horizon <= 0 || window <= 0 {
		return nil
	}

	leads := make([]float64, len(series))
	wins := make([]float64, len(series))
	for i, m := range series {
		leads[i] = float64(m.NewLeads)
		wins[i] = float64(m.NewWon)
	}

	week := series[len(series)-1].Week
	out := make([]models.ForecastRow, 0, horizon)
	for i := 0; i < horizon; i++ {
		week = week.AddDate(0, 0, 7)
		row := models.ForecastRow{
			Week:              week,
			PredictedNewLeads: tailMean(leads, window),
			PredictedNewWon:   tailMean(wins, window),
		}
		leads = append(leads, row.PredictedNewLeads)
		wins = append(wins, row.PredictedNewWon)
		out = append(out, row)
	}
	return out
}

func tailMean(vals []float64, window int) float64 {
	start := len(vals) - window
	if start < 0 {
		start = 0
	}
	tail := vals[start:]
	var sum float64
	for _, v := range tail {
		sum += v
	}
	return sum / float64(len(tail))
}
