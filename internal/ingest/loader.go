package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"leadpulse/internal/config"
	"leadpulse/internal/models"
	"leadpulse/internal/store"
)

var (
	leadsLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadpulse_leads_loaded_total",
		Help: "Lead rows accepted by normalization.",
	})
	leadsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadpulse_leads_skipped_total",
		Help: "Lead rows dropped for an unparseable created_at.",
	})
	ingestRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadpulse_ingest_runs_total",
		Help: "Completed ingest runs.",
	})
)

// Loader reads a lead CSV (local file or HTTP URL), normalizes every row and
// fills the store. Malformed rows are skipped and counted, never fatal.
type Loader struct {
	c   HTTPClient
	st  *store.LeadStore
	log *slog.Logger
	cfg config.Config
}

func NewLoader(c HTTPClient, st *store.LeadStore, log *slog.Logger, cfg config.Config) *Loader {
	return &Loader{c: c, st: st, log: log, cfg: cfg}
}

// Result summarizes one ingest run.
type Result struct {
	Loaded     int `json:"loaded"`
	Skipped    int `json:"skipped"`
	Duplicates int `json:"duplicates"`
}

// Run ingests the given source, or the configured input CSV when source is
// empty. Records are staged until the whole file has been read cleanly and
// only then committed, replacing the previous dataset; a structurally broken
// CSV leaves the store untouched.
func (l *Loader) Run(ctx context.Context, source string) (Result, error) {
	if source == "" {
		source = l.cfg.InputCSV
	}
	rc, err := l.open(ctx, source)
	if err != nil {
		return Result{}, fmt.Errorf("open source %s: %w", source, err)
	}
	defer rc.Close()

	recs, skipped, err := l.parse(rc)
	if err != nil {
		return Result{}, err
	}

	l.st.Reset()
	l.st.AddSkipped(skipped)
	res := Result{Skipped: skipped}
	for _, rec := range recs {
		if !l.st.Add(rec) {
			res.Duplicates++
			continue
		}
		res.Loaded++
	}
	leadsLoaded.Add(float64(res.Loaded))
	leadsSkipped.Add(float64(skipped))
	ingestRuns.Inc()
	l.log.Info("ingest complete",
		slog.String("source", source),
		slog.Int("loaded", res.Loaded),
		slog.Int("skipped", res.Skipped),
		slog.Int("duplicates", res.Duplicates))
	return res, nil
}

func (l *Loader) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return FetchCSV(ctx, l.c, source)
	}
	return os.Open(source)
}

// parse reads and normalizes every row. Malformed rows are skipped and
// counted; a structural CSV error aborts the whole parse.
func (l *Loader) parse(r io.Reader) ([]models.LeadRecord, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are handled per-field
	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.ToLower(header[i]))
	}

	var recs []models.LeadRecord
	var skipped int
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read row: %w", err)
		}
		row := make(RawRow, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[name] = fields[i]
			}
		}
		rec, err := Normalize(row)
		if err != nil {
			skipped++
			l.log.Debug("row skipped", slog.String("reason", err.Error()))
			continue
		}
		recs = append(recs, rec)
	}
	return recs, skipped, nil
}
