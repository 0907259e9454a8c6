package report

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"leadpulse/internal/analytics"
	"leadpulse/internal/config"
	"leadpulse/internal/models"
	"leadpulse/internal/store"
)

// Service answers report queries over the current lead set. Every call is a
// fresh pass over the store; the dataset is in-memory and single-run, so
// there is nothing to cache.
type Service struct {
	st      *store.LeadStore
	horizon int
	window  int
	now     func() time.Time
}

func NewService(st *store.LeadStore, cfg config.Config) *Service {
	return &Service{st: st, horizon: cfg.ForecastHorizon, window: cfg.ForecastWindow, now: time.Now}
}

// Tables runs the whole pipeline: aggregate, forecast, assemble.
func (s *Service) Tables() Tables {
	agg := analytics.Aggregate(s.st.All(), s.now())
	fc := analytics.Forecast(agg.Weekly, s.horizon, s.window)
	return Assemble(agg, fc)
}

func (s *Service) Weekly(v url.Values) []models.SummaryRow {
	rows := s.Tables().Summary
	limit, offset := pageParams(v, len(rows))
	return paginate(rows, limit, offset)
}

func (s *Service) Channels(v url.Values) []models.ChannelRow {
	all := s.Tables().Channels
	want := csvSet(v.Get("channel"))
	rows := make([]models.ChannelRow, 0, len(all))
	for _, r := range all {
		if len(want) > 0 {
			if _, ok := want[norm(r.Channel)]; !ok {
				continue
			}
		}
		rows = append(rows, r)
	}
	limit, offset := pageParams(v, len(rows))
	return paginate(rows, limit, offset)
}

func (s *Service) Regions(v url.Values) []models.RegionRow {
	all := s.Tables().Regions
	want := csvSet(v.Get("region"))
	rows := make([]models.RegionRow, 0, len(all))
	for _, r := range all {
		if len(want) > 0 {
			if _, ok := want[norm(r.Region)]; !ok {
				continue
			}
		}
		rows = append(rows, r)
	}
	limit, offset := pageParams(v, len(rows))
	return paginate(rows, limit, offset)
}

func (s *Service) Forecast() []models.ForecastOut {
	return s.Tables().Forecast
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func csvSet(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, p := range strings.Split(s, ",") {
		p = norm(p)
		if p != "" {
			out[p] = struct{}{}
		}
	}
	return out
}

func pageParams(v url.Values, n int) (limit, offset int) {
	limit = atoiDef(v.Get("limit"), 100)
	offset = atoiDef(v.Get("offset"), 0)
	return clampLimitOffset(limit, offset, n)
}

func paginate[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func atoiDef(s string, d int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}

func clampLimitOffset(limit, offset, n int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = n
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset > n {
		offset = n
	}
	return limit, offset
}
