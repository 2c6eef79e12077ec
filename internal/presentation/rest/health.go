package rest

import (
	"log/slog"
	"net/http"
	"time"
)

// HealthHandler provides HTTP health check endpoints.
type HealthHandler struct {
	logger      *slog.Logger
	modelLoaded func() bool
	startTime   time.Time
}

// NewHealthHandler creates a new health check handler. modelLoaded
// reports whether the classifier path is available.
func NewHealthHandler(logger *slog.Logger, modelLoaded func() bool) *HealthHandler {
	return &HealthHandler{
		logger:      logger,
		modelLoaded: modelLoaded,
		startTime:   time.Now(),
	}
}

// HealthResponse is the JSON response for the public health endpoint.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// LivenessResponse is the JSON response for liveness probes.
type LivenessResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

// RegisterRoutes registers health endpoints on the provided ServeMux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /healthz", h.Healthz)
}

// Health reports service health plus classifier availability, so callers
// can tell a degraded heuristic-only process from a fully loaded one.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "healthy",
		ModelLoaded: h.modelLoaded != nil && h.modelLoaded(),
	})
}

// Healthz handles liveness probe requests.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LivenessResponse{
		Status:  "healthy",
		Service: "phishguard",
		Uptime:  time.Since(h.startTime).String(),
	})
}
