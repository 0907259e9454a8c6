package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"leadpulse/internal/config"
	"leadpulse/internal/httpx"
	"leadpulse/internal/ingest"
	"leadpulse/internal/report"
	"leadpulse/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("err", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	cl := ingest.NewHTTPClient(cfg.HTTPTimeout)
	st := store.NewLeadStore()
	loader := ingest.NewLoader(cl, st, logger, cfg)
	svc := report.NewService(st, cfg)
	exp := report.NewExporter(cfg.OutputDir, logger)

	r := httpx.NewRouter(logger, loader, svc, exp)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server",
		slog.String("port", cfg.Port),
		slog.String("input_csv", cfg.InputCSV),
		slog.String("output_dir", cfg.OutputDir))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
