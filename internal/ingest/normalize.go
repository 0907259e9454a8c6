package ingest

import (
	"fmt"
	"strings"
	"time"

	"leadpulse/internal/models"
)

// RawRow is one CSV row keyed by header name. Values may be empty; extra
// keys are ignored.
type RawRow map[string]string

const unknownCategory = "Unknown"

var dateLayouts = []string{
	models.DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Normalize turns a raw row into a LeadRecord. An unparseable or missing
// created_at makes the whole row invalid; bad optional stage dates are
// treated as absent and bad categoricals fall back to "Unknown".
func Normalize(row RawRow) (models.LeadRecord, error) {
	created, err := parseDate(row["created_at"])
	if err != nil {
		return models.LeadRecord{}, fmt.Errorf("created_at %q: %w", row["created_at"], err)
	}
	return models.LeadRecord{
		ID:        strings.TrimSpace(row["lead_id"]),
		CreatedAt: created,
		MQLAt:     parseOptional(row["mql_at"]),
		SQLAt:     parseOptional(row["sql_at"]),
		WonAt:     parseOptional(row["won_at"]),
		Channel:   coalesce(row["channel"], unknownCategory),
		Region:    coalesce(row["region"], unknownCategory),
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}

// parseOptional is lenient: empty or unparseable stage dates become absent.
func parseOptional(s string) *time.Time {
	t, err := parseDate(s)
	if err != nil {
		return nil
	}
	return &t
}

func coalesce(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}
