package server

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the API routes and middleware chain.
func NewRouter(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", h.HandleHealthCheck)
	mux.HandleFunc("POST /api/analyze", h.HandleAnalyze)
	mux.HandleFunc("GET /api/report/{id}", h.HandleGetReport)

	mux.Handle("/metrics", promhttp.Handler())

	var chained http.Handler = mux
	chained = Metrics(chained)
	chained = Logging(logger, chained)
	return chained
}
