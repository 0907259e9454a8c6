package models

import "time"

// DateLayout is how week keys and input dates appear on the wire.
const DateLayout = "2006-01-02"

// LeadRecord is one normalized CRM lead. Built once from a raw CSV row
// and never mutated afterwards.
type LeadRecord struct {
	ID        string
	CreatedAt time.Time
	MQLAt     *time.Time
	SQLAt     *time.Time
	WonAt     *time.Time
	Channel   string
	Region    string
}

// WeekOf returns the Monday of t's Monday-to-Sunday week at midnight.
// The calendar date is taken as-is from t (no timezone conversion) and the
// key is rebuilt in UTC, so the same calendar week always yields the same
// key regardless of the input's offset. Time of day is discarded.
func WeekOf(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // days since Monday
	return day.AddDate(0, 0, -offset)
}

// WeeklyMetrics is the aggregate row for one week (or one week within a
// channel/region partition). Rates are 0 when their denominator is 0.
type WeeklyMetrics struct {
	Week       time.Time
	NewLeads   int
	NewMQL     int
	NewSQL     int
	NewWon     int
	MQLRate    float64
	SQLRate    float64
	WinRate    float64
	AvgLeadAge float64 // mean days from created_at to won_at (or the run's reference time)
}

// ForecastRow is one future week predicted by the moving-average forecaster.
type ForecastRow struct {
	Week              time.Time
	PredictedNewLeads float64
	PredictedNewWon   float64
}

// SummaryRow is a weekly-summary table row. Forecast weeks carry rounded
// predictions in the count columns and IsForecast=true.
type SummaryRow struct {
	Week       string  `json:"week"`
	NewLeads   int     `json:"new_leads"`
	NewMQL     int     `json:"new_mql"`
	NewSQL     int     `json:"new_sql"`
	NewWon     int     `json:"new_won"`
	MQLRate    float64 `json:"mql_rate"`
	SQLRate    float64 `json:"sql_rate"`
	WinRate    float64 `json:"win_rate"`
	AvgLeadAge float64 `json:"avg_lead_age"`
	IsForecast bool    `json:"is_forecast"`
}

// ChannelRow is a channel-breakdown table row.
type ChannelRow struct {
	Week     string  `json:"week"`
	Channel  string  `json:"channel"`
	NewLeads int     `json:"new_leads"`
	NewMQL   int     `json:"new_mql"`
	NewSQL   int     `json:"new_sql"`
	NewWon   int     `json:"new_won"`
	MQLRate  float64 `json:"mql_rate"`
	SQLRate  float64 `json:"sql_rate"`
	WinRate  float64 `json:"win_rate"`
}

// RegionRow is a region-breakdown table row.
type RegionRow struct {
	Week     string  `json:"week"`
	Region   string  `json:"region"`
	NewLeads int     `json:"new_leads"`
	NewMQL   int     `json:"new_mql"`
	NewSQL   int     `json:"new_sql"`
	NewWon   int     `json:"new_won"`
	MQLRate  float64 `json:"mql_rate"`
	SQLRate  float64 `json:"sql_rate"`
	WinRate  float64 `json:"win_rate"`
}

// ForecastOut is a forecast table row.
type ForecastOut struct {
	Week              string  `json:"week"`
	PredictedNewLeads float64 `json:"predicted_new_leads"`
	PredictedNewWon   float64 `json:"predicted_new_won"`
}
