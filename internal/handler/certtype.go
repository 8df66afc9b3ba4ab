package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ixcomercio/recognitions/internal/model"
)

// CertTypeService is the domain surface the cert type handler needs.
type CertTypeService interface {
	Create(ctx context.Context, ct *model.CertType) (*model.CertType, error)
	GetAll(ctx context.Context) ([]*model.CertType, error)
	GetByID(ctx context.Context, id int64) (*model.CertType, error)
	GetByTipo(ctx context.Context, tipo string) (*model.CertType, error)
	Update(ctx context.Context, id int64, ct *model.CertType) (*model.CertType, error)
	Delete(ctx context.Context, id int64) (*model.CertType, error)
}

// CertTypeHandler handles HTTP requests for certificate type operations.
type CertTypeHandler struct {
	svc    CertTypeService
	logger *slog.Logger
}

// NewCertTypeHandler creates a new CertTypeHandler.
func NewCertTypeHandler(svc CertTypeService, logger *slog.Logger) *CertTypeHandler {
	return &CertTypeHandler{svc: svc, logger: logger}
}

// certTypeRequest is the request body for create and update.
type certTypeRequest struct {
	Tipo   string `json:"tipo"`
	Nombre string `json:"nombre"`
}

// Create handles POST /api/cert-type.
func (h *CertTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req certTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"status":  "ERROR",
			"message": "invalid request body",
		})
		return
	}

	certType, err := h.svc.Create(r.Context(), &model.CertType{Tipo: req.Tipo, Nombre: req.Nombre})
	if err != nil {
		writeServiceError(w, "certificate type", err)
		return
	}

	h.logger.Info("cert type created", "id", certType.ID, "tipo", certType.Tipo)
	writeResult(w, http.StatusCreated, certType)
}

// GetAll handles GET /api/cert-type.
func (h *CertTypeHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	certTypes, err := h.svc.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, "certificate type", err)
		return
	}
	writeResult(w, http.StatusOK, certTypes)
}

// GetByID handles GET /api/cert-type/{id}.
func (h *CertTypeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	certType, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, "certificate type", err)
		return
	}
	writeResult(w, http.StatusOK, certType)
}

// GetByTipo handles GET /api/cert-type/tipo/{tipo}.
func (h *CertTypeHandler) GetByTipo(w http.ResponseWriter, r *http.Request) {
	tipo := chi.URLParam(r, "tipo")

	certType, err := h.svc.GetByTipo(r.Context(), tipo)
	if err != nil {
		writeServiceError(w, "certificate type", err)
		return
	}
	writeResult(w, http.StatusOK, certType)
}

// Update handles PUT /api/cert-type/{id}.
func (h *CertTypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req certTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"status":  "ERROR",
			"message": "invalid request body",
		})
		return
	}

	certType, err := h.svc.Update(r.Context(), id, &model.CertType{Tipo: req.Tipo, Nombre: req.Nombre})
	if err != nil {
		writeServiceError(w, "certificate type", err)
		return
	}

	h.logger.Info("cert type updated", "id", id)
	writeResult(w, http.StatusOK, certType)
}

// Delete handles DELETE /api/cert-type/{id}.
func (h *CertTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	certType, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, "certificate type", err)
		return
	}

	h.logger.Info("cert type deleted", "id", id)
	writeJSON(w, http.StatusOK, map[string]any{
		"result":  certType,
		"message": "certificate type deleted successfully",
	})
}

// parseID reads the {id} route param; a non-numeric id is a 404, since no
// certificate type can have it.
func (h *CertTypeHandler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeNotFound(w, "certificate type", "no certificate type found with id: "+raw)
		return 0, false
	}
	return id, true
}
