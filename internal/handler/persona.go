package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ixcomercio/recognitions/internal/model"
)

// PersonaService is the domain surface the persona handler needs.
type PersonaService interface {
	Create(ctx context.Context, p *model.Persona) (*model.Persona, error)
	GetAll(ctx context.Context) ([]*model.Persona, error)
	GetByEmail(ctx context.Context, email string) (*model.Persona, error)
	Update(ctx context.Context, email string, p *model.Persona) (*model.Persona, error)
	Delete(ctx context.Context, email string) (*model.Persona, error)
}

// PersonaHandler handles HTTP requests for persona operations.
type PersonaHandler struct {
	svc    PersonaService
	logger *slog.Logger
}

// NewPersonaHandler creates a new PersonaHandler.
func NewPersonaHandler(svc PersonaService, logger *slog.Logger) *PersonaHandler {
	return &PersonaHandler{svc: svc, logger: logger}
}

// personaRequest is the request body for create and update.
type personaRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	URLImage string `json:"url_image"`
	Team     string `json:"team"`
	Role     string `json:"role"`
	Admin    bool   `json:"admin"`
	Enabled  bool   `json:"enabled"`
}

// Create handles POST /api/persona.
func (h *PersonaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req personaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"status":  "ERROR",
			"message": "invalid request body",
		})
		return
	}

	persona, err := h.svc.Create(r.Context(), &model.Persona{
		Email:    req.Email,
		FullName: req.FullName,
		URLImage: req.URLImage,
		Team:     req.Team,
		Role:     req.Role,
		Admin:    req.Admin,
		Enabled:  req.Enabled,
	})
	if err != nil {
		writeServiceError(w, "persona", err)
		return
	}

	h.logger.Info("persona created", "email", persona.Email)
	writeResult(w, http.StatusCreated, persona)
}

// GetAll handles GET /api/persona.
func (h *PersonaHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	personas, err := h.svc.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, "persona", err)
		return
	}
	writeResult(w, http.StatusOK, personas)
}

// GetByEmail handles GET /api/persona/{email}.
func (h *PersonaHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	persona, err := h.svc.GetByEmail(r.Context(), email)
	if err != nil {
		writeServiceError(w, "persona", err)
		return
	}
	writeResult(w, http.StatusOK, persona)
}

// Update handles PUT /api/persona/{email}.
func (h *PersonaHandler) Update(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var req personaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"status":  "ERROR",
			"message": "invalid request body",
		})
		return
	}

	persona, err := h.svc.Update(r.Context(), email, &model.Persona{
		FullName: req.FullName,
		URLImage: req.URLImage,
		Team:     req.Team,
		Role:     req.Role,
		Admin:    req.Admin,
		Enabled:  req.Enabled,
	})
	if err != nil {
		writeServiceError(w, "persona", err)
		return
	}

	h.logger.Info("persona updated", "email", email)
	writeResult(w, http.StatusOK, persona)
}

// Delete handles DELETE /api/persona/{email}.
func (h *PersonaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	persona, err := h.svc.Delete(r.Context(), email)
	if err != nil {
		writeServiceError(w, "persona", err)
		return
	}

	h.logger.Info("persona deleted", "email", email)
	writeJSON(w, http.StatusOK, map[string]any{
		"result":  persona,
		"message": "persona deleted successfully",
	})
}
