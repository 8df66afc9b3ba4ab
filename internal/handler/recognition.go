package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ixcomercio/recognitions/internal/model"
	"github.com/ixcomercio/recognitions/internal/service"
)

// RecognitionService is the domain surface the recognition handler needs.
type RecognitionService interface {
	Create(ctx context.Context, input service.CreateRecognitionInput) (*service.CreateRecognitionResult, error)
	GetAll(ctx context.Context) ([]*model.Recognition, error)
	GetByID(ctx context.Context, id string) (*model.Recognition, error)
	GetByColaborador(ctx context.Context, nombre string) ([]*model.Recognition, error)
	GetByCertTypeID(ctx context.Context, certTypeID int64) ([]*model.Recognition, error)
	GetByTipo(ctx context.Context, tipo string) ([]*model.Recognition, error)
	Update(ctx context.Context, id string, input service.CreateRecognitionInput) (*model.Recognition, error)
	Delete(ctx context.Context, id string) (*model.Recognition, error)
	Stats(ctx context.Context) ([]*model.RecognitionStats, error)
}

// RecognitionHandler handles HTTP requests for recognition operations.
type RecognitionHandler struct {
	svc    RecognitionService
	logger *slog.Logger
}

// NewRecognitionHandler creates a new RecognitionHandler.
func NewRecognitionHandler(svc RecognitionService, logger *slog.Logger) *RecognitionHandler {
	return &RecognitionHandler{svc: svc, logger: logger}
}

// recognitionRequest is the request body for create and update.
type recognitionRequest struct {
	CertTypeID        int64   `json:"cert_type_id"`
	Meeting           string  `json:"meeting"`
	NombreColaborador string  `json:"nombre_colaborador"`
	EmailPersona      *string `json:"email_persona,omitempty"`
}

func (req recognitionRequest) toInput() service.CreateRecognitionInput {
	return service.CreateRecognitionInput{
		CertTypeID:        req.CertTypeID,
		Meeting:           req.Meeting,
		NombreColaborador: req.NombreColaborador,
		EmailPersona:      req.EmailPersona,
	}
}

// Create handles POST /api/reconocimiento.
// The response carries the persisted record; the notification outcome is
// never part of it.
func (h *RecognitionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req recognitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"status":  "ERROR",
			"message": "invalid request body",
		})
		return
	}

	result, err := h.svc.Create(r.Context(), req.toInput())
	if err != nil {
		writeServiceError(w, "recognition", err)
		return
	}

	h.logger.Info("recognition created",
		"id", result.Recognition.ID,
		"cert_type_id", result.Recognition.CertTypeID,
		"notified", result.NotificationErr == nil && result.Recognition.EmailPersona != nil,
	)
	writeResult(w, http.StatusCreated, result.Recognition)
}

// GetAll handles GET /api/reconocimiento.
func (h *RecognitionHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	recognitions, err := h.svc.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, "recognition", err)
		return
	}
	writeResult(w, http.StatusOK, recognitions)
}

// GetByID handles GET /api/reconocimiento/{id}.
func (h *RecognitionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, "recognition", err)
		return
	}
	writeResult(w, http.StatusOK, rec)
}

// GetByColaborador handles GET /api/reconocimiento/colaborador/{nombre_colaborador}.
func (h *RecognitionHandler) GetByColaborador(w http.ResponseWriter, r *http.Request) {
	nombre := chi.URLParam(r, "nombre_colaborador")

	recognitions, err := h.svc.GetByColaborador(r.Context(), nombre)
	if err != nil {
		writeServiceError(w, "recognition", err)
		return
	}
	writeResult(w, http.StatusOK, recognitions)
}

// GetByCertTypeID handles GET /api/reconocimiento/cert-type/{cert_type_id}.
func (h *RecognitionHandler) GetByCertTypeID(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "cert_type_id")
	certTypeID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeNotFound(w, "certificate type", "no certificate type found with id: "+raw)
		return
	}

	recognitions, err := h.svc.GetByCertTypeID(r.Context(), certTypeID)
	if err != nil {
		writeServiceError(w, "recognition", err)
		return
	}
	writeResult(w, http.StatusOK, recognitions)
}

// GetByTipo handles GET /api/reconocimiento/tipo/{tipo}.
func (h *RecognitionHandler) GetByTipo(w http.ResponseWriter, r *http.Request) {
	tipo := chi.URLParam(r, "tipo")

	recognitions, err := h.svc.GetByTipo(r.Context(), tipo)
	if err != nil {
		writeServiceError(w, "recognition", err)
		return
	}
	writeResult(w, http.StatusOK, recognitions)
}

// Stats handles GET /api/reconocimiento/stats.
func (h *RecognitionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		writeServiceError(w, "recognition", err)
		return
	}
	writeResult(w, http.StatusOK, stats)
}

// Update handles PUT /api/reconocimiento/{id}.
func (h *RecognitionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req recognitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"status":  "ERROR",
			"message": "invalid request body",
		})
		return
	}

	rec, err := h.svc.Update(r.Context(), id, req.toInput())
	if err != nil {
		writeServiceError(w, "recognition", err)
		return
	}

	h.logger.Info("recognition updated", "id", id)
	writeResult(w, http.StatusOK, rec)
}

// Delete handles DELETE /api/reconocimiento/{id}.
func (h *RecognitionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, "recognition", err)
		return
	}

	h.logger.Info("recognition deleted", "id", id)
	writeJSON(w, http.StatusOK, map[string]any{
		"result":  rec,
		"message": "recognition deleted successfully",
	})
}
