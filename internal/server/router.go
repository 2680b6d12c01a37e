package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tagwatch/tagwatch/internal/handlers"
	"github.com/tagwatch/tagwatch/internal/middleware"
)

// NewRouter constructs a ServeMux with relay API routes registered.
func NewRouter(h *handlers.EventHandler) http.Handler {
	mux := http.NewServeMux()

	// Event ingest and record lookup
	mux.HandleFunc("POST /api/v1/events", h.HandleEvent)
	mux.HandleFunc("GET /api/v1/images/{tag}", h.HandleGetImage)
	mux.HandleFunc("GET /api/v1/audit", h.HandleAudit)

	// Health endpoints
	mux.HandleFunc("/healthz", h.Health)
	mux.HandleFunc("/readyz", h.Ready)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.RequestID(mux)
}
