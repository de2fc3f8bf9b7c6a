package handlers

import (
	"context"
	"net/http"
)

// HealthChecker reports storage reachability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler handles liveness and readiness probes
type HealthHandler struct {
	db HealthChecker
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db HealthChecker) *HealthHandler {
	return &HealthHandler{db: db}
}

// Ping is the public liveness probe.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}

// Health also verifies the database connection.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(r.Context()); err != nil {
		respondStorageError(w, "health.check", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
