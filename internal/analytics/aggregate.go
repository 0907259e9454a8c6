package analytics

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"leadpulse/internal/models"
)

// Aggregates holds the three groupings produced by one pipeline pass.
type Aggregates struct {
	Weekly   []models.WeeklyMetrics
	Channels []CategoryMetrics
	Regions  []CategoryMetrics
}

// CategoryMetrics is one week of one channel or region partition.
type CategoryMetrics struct {
	Name string
	models.WeeklyMetrics
}

type catKey struct {
	week time.Time
	name string
}

// Aggregate reduces the normalized lead set into the overall weekly series
// plus channel and region breakdowns. A record contributes each of its stage
// timestamps to that stage's own week, so one lead can touch up to four
// buckets. ref is the run's reference time, used for the age of still-open
// leads.
//
// The overall series is continuous: every week between the earliest and
// latest observed week appears, zero-activity weeks included. Breakdowns only
// carry buckets with at least one event.
func Aggregate(records []models.LeadRecord, ref time.Time) Aggregates {
	overall := map[time.Time]*models.WeeklyMetrics{}
	ageSum := map[time.Time]float64{}
	channels := map[catKey]*models.WeeklyMetrics{}
	regions := map[catKey]*models.WeeklyMetrics{}

	bump := func(wk time.Time, chName, regName string, f func(*models.WeeklyMetrics)) {
		f(at(overall, wk))
		f(atCat(channels, wk, chName))
		f(atCat(regions, wk, regName))
	}

	for _, r := range records {
		created := models.WeekOf(r.CreatedAt)
		bump(created, r.Channel, r.Region, func(m *models.WeeklyMetrics) { m.NewLeads++ })
		ageSum[created] += leadAge(r, ref)

		if r.MQLAt != nil {
			bump(models.WeekOf(*r.MQLAt), r.Channel, r.Region, func(m *models.WeeklyMetrics) { m.NewMQL++ })
		}
		if r.SQLAt != nil {
			bump(models.WeekOf(*r.SQLAt), r.Channel, r.Region, func(m *models.WeeklyMetrics) { m.NewSQL++ })
		}
		if r.WonAt != nil {
			bump(models.WeekOf(*r.WonAt), r.Channel, r.Region, func(m *models.WeeklyMetrics) { m.NewWon++ })
		}
	}

	return Aggregates{
		Weekly:   fillWeeks(overall, ageSum),
		Channels: finalizeCats(channels),
		Regions:  finalizeCats(regions),
	}
}

func at(m map[time.Time]*models.WeeklyMetrics, wk time.Time) *models.WeeklyMetrics {
	b, ok := m[wk]
	if !ok {
		b = &models.WeeklyMetrics{Week: wk}
		m[wk] = b
	}
	return b
}

func atCat(m map[catKey]*models.WeeklyMetrics, wk time.Time, name string) *models.WeeklyMetrics {
	k := catKey{week: wk, name: name}
	b, ok := m[k]
	if !ok {
		b = &models.WeeklyMetrics{Week: wk}
		m[k] = b
	}
	return b
}

// fillWeeks materializes the continuous overall series, Monday by Monday,
// from the earliest to the latest observed week.
func fillWeeks(overall map[time.Time]*models.WeeklyMetrics, ageSum map[time.Time]float64) []models.WeeklyMetrics {
	if len(overall) == 0 {
		return nil
	}
	weeks := lo.Keys(overall)
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })

	first, last := weeks[0], weeks[len(weeks)-1]
	var out []models.WeeklyMetrics
	for wk := first; !wk.After(last); wk = wk.AddDate(0, 0, 7) {
		row := models.WeeklyMetrics{Week: wk}
		if b, ok := overall[wk]; ok {
			row = *b
		}
		applyRates(&row)
		if row.NewLeads > 0 {
			row.AvgLeadAge = ageSum[wk] / float64(row.NewLeads)
		}
		out = append(out, row)
	}
	return out
}

func finalizeCats(m map[catKey]*models.WeeklyMetrics) []CategoryMetrics {
	keys := lo.Keys(m)
	sort.Slice(keys, func(i, j int) bool {
		if !keys[i].week.Equal(keys[j].week) {
			return keys[i].week.Before(keys[j].week)
		}
		return keys[i].name < keys[j].name
	})
	out := make([]CategoryMetrics, 0, len(keys))
	for _, k := range keys {
		row := *m[k]
		applyRates(&row)
		out = append(out, CategoryMetrics{Name: k.name, WeeklyMetrics: row})
	}
	return out
}

func applyRates(m *models.WeeklyMetrics) {
	m.MQLRate = safeRate(m.NewMQL, m.NewLeads)
	m.SQLRate = safeRate(m.NewSQL, m.NewMQL)
	m.WinRate = safeRate(m.NewWon, m.NewSQL)
}

func safeRate(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// leadAge is the lead's age in days: closed leads age until won_at, open
// leads until the reference time. Never negative.
func leadAge(r models.LeadRecord, ref time.Time) float64 {
	end := ref
	if r.WonAt != nil {
		end = *r.WonAt
	}
	days := end.Sub(r.CreatedAt).Hours() / 24
	if days < 0 {
		return 0
	}
	return days
}
