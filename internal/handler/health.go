package handler

import (
	"context"
	"net/http"
)

// HealthChecker defines an interface for checking service health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	db HealthChecker
}

// NewHealthHandler creates a new HealthHandler.
// Pass nil for db if it is not yet initialized.
func NewHealthHandler(db HealthChecker) *HealthHandler {
	return &HealthHandler{db: db}
}

// Healthcheck is the liveness endpoint. It answers independent of
// database availability.
//
// GET /api/healthcheck
func (h *HealthHandler) Healthcheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Arq-Pokemon",
		"status":  "OK",
	})
}

// Readyz is a readiness probe endpoint. It checks the database and
// returns 503 when it is unreachable.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	status := http.StatusOK

	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			checks["postgres"] = "unavailable"
			status = http.StatusServiceUnavailable
		} else {
			checks["postgres"] = "ok"
		}
	}

	body := map[string]any{"checks": checks}
	if status == http.StatusOK {
		body["status"] = "ok"
	} else {
		body["status"] = "degraded"
	}
	writeJSON(w, status, body)
}
