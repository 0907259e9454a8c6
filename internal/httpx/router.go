package httpx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"leadpulse/internal/ingest"
	"leadpulse/internal/report"
	"leadpulse/internal/utils"
)

func NewRouter(log *slog.Logger, loader *ingest.Loader, svc *report.Service, exp *report.Exporter) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	mux.Use(utils.Metrics)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/ingest/run", func(w http.ResponseWriter, r *http.Request) {
		res, err := loader.Run(r.Context(), r.URL.Query().Get("source"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		render.Status(r, http.StatusAccepted)
		render.JSON(w, r, res)
	})

	mux.Post("/export/run", func(w http.ResponseWriter, r *http.Request) {
		counts, err := exp.Export(svc.Tables())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		render.JSON(w, r, counts)
	})

	mux.Route("/reports", func(rt chi.Router) {
		rt.Get("/weekly", func(w http.ResponseWriter, r *http.Request) {
			render.JSON(w, r, svc.Weekly(r.URL.Query()))
		})
		rt.Get("/channels", func(w http.ResponseWriter, r *http.Request) {
			render.JSON(w, r, svc.Channels(r.URL.Query()))
		})
		rt.Get("/regions", func(w http.ResponseWriter, r *http.Request) {
			render.JSON(w, r, svc.Regions(r.URL.Query()))
		})
		rt.Get("/forecast", func(w http.ResponseWriter, r *http.Request) {
			render.JSON(w, r, svc.Forecast())
		})
	})

	return mux
}
