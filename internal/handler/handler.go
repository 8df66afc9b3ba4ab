// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ixcomercio/recognitions/internal/apperr"
	"github.com/ixcomercio/recognitions/internal/service"
)

// Handler wraps the route-level fallbacks.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// NotFound handles requests matching no registered route.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"status":  "ERROR",
		"message": "route not found",
	})
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"status":  "ERROR",
		"message": "method not allowed",
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		_ = err
	}
}

// writeResult writes the success envelope.
func writeResult(w http.ResponseWriter, status int, result any) {
	writeJSON(w, status, map[string]any{"result": result})
}

// writeNotFound writes the not-found envelope used by keyed lookups.
func writeNotFound(w http.ResponseWriter, entity, message string) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error":   entity + " not found",
		"message": message,
	})
}

// writeServiceError is the terminal error handler: it converts any error
// reaching the boundary into the uniform envelope. NotFoundError becomes a
// 404; typed application errors keep their declared status; anything else
// defaults to 500.
func writeServiceError(w http.ResponseWriter, entity string, err error) {
	var nf *service.NotFoundError
	if errors.As(err, &nf) {
		writeNotFound(w, entity, nf.Message)
		return
	}

	writeJSON(w, apperr.StatusOf(err), map[string]string{
		"status":  "ERROR",
		"message": apperr.MessageOf(err),
	})
}
