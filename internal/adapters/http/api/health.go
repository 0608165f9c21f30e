package api

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/pokedex/pkg/metrics"
)

// RowCounter reports the number of loaded rows.
type RowCounter interface {
	Rows(ctx context.Context) int
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	rows RowCounter
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(rows RowCounter) *HealthHandler {
	return &HealthHandler{rows: rows}
}

type healthResponse struct {
	Status string `json:"status"`
	Rows   int    `json:"rows"`
}

// HandleHealth handles GET /health requests. It succeeds even when the
// dataset failed to load.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Rows: h.rows.Rows(r.Context())})
}

// NewMetricsHandler serves the custom Prometheus registry.
func NewMetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
