package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ixcomercio/recognitions/internal/apperr"
	"github.com/ixcomercio/recognitions/internal/mailer"
	"github.com/ixcomercio/recognitions/internal/metrics"
	"github.com/ixcomercio/recognitions/internal/model"
	"github.com/ixcomercio/recognitions/internal/repository"
)

// RecognitionStore is the persistence surface the recognition service needs.
type RecognitionStore interface {
	CreateRecognition(ctx context.Context, rec *model.Recognition) (*model.Recognition, error)
	ListRecognitions(ctx context.Context) ([]*model.Recognition, error)
	GetRecognitionByID(ctx context.Context, id string) (*model.Recognition, error)
	ListRecognitionsByColaborador(ctx context.Context, nombre string) ([]*model.Recognition, error)
	ListRecognitionsByCertTypeID(ctx context.Context, certTypeID int64) ([]*model.Recognition, error)
	ListRecognitionsByTipo(ctx context.Context, tipo string) ([]*model.Recognition, error)
	UpdateRecognition(ctx context.Context, id string, rec *model.Recognition) (*model.Recognition, error)
	DeleteRecognition(ctx context.Context, id string) (*model.Recognition, error)
	RecognitionStats(ctx context.Context) ([]*model.RecognitionStats, error)
}

// CertTypeGetter resolves certificate type references.
type CertTypeGetter interface {
	GetCertTypeByID(ctx context.Context, id int64) (*model.CertType, error)
}

// PersonaGetter resolves persona references.
type PersonaGetter interface {
	GetPersonaByEmail(ctx context.Context, email string) (*model.Persona, error)
}

// Mailer dispatches recognition notification emails.
type Mailer interface {
	SendRecognition(ctx context.Context, email mailer.RecognitionEmail) error
}

// RecognitionOptions carries environment-derived settings.
type RecognitionOptions struct {
	// VerificationBase is the public base URL for certificate verification links.
	VerificationBase string
	// Location resolves the issue date printed on outbound mail.
	Location *time.Location
}

// RecognitionService orchestrates recognition creation and reads.
type RecognitionService struct {
	store     RecognitionStore
	certTypes CertTypeGetter
	personas  PersonaGetter
	mailer    Mailer
	logger    *slog.Logger
	metrics   metrics.Recorder
	opts      RecognitionOptions
}

// NewRecognitionService creates a new RecognitionService.
// mailer may be nil, in which case no notifications are dispatched.
func NewRecognitionService(
	store RecognitionStore,
	certTypes CertTypeGetter,
	personas PersonaGetter,
	m Mailer,
	logger *slog.Logger,
	recorder metrics.Recorder,
	opts RecognitionOptions,
) *RecognitionService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &RecognitionService{
		store:     store,
		certTypes: certTypes,
		personas:  personas,
		mailer:    m,
		logger:    logger,
		metrics:   recorder,
		opts:      opts,
	}
}

// CreateRecognitionInput defines input for creating a recognition.
type CreateRecognitionInput struct {
	CertTypeID        int64
	Meeting           string
	NombreColaborador string
	EmailPersona      *string
}

// CreateRecognitionResult separates the durable outcome from the
// best-effort notification outcome. NotificationErr is informational:
// it is never returned as the operation's error.
type CreateRecognitionResult struct {
	Recognition     *model.Recognition
	NotificationErr error
}

// Create validates the recognition's references, persists the row, then
// dispatches a notification email when a persona is referenced.
//
// The reference checks are hard dependencies: if either entity is missing
// no row is inserted. The notification is a soft dependency: once the
// insert succeeds the record is committed and is returned regardless of
// the dispatch outcome, which is only logged.
func (s *RecognitionService) Create(ctx context.Context, input CreateRecognitionInput) (*CreateRecognitionResult, error) {
	certType, err := s.certTypes.GetCertTypeByID(ctx, input.CertTypeID)
	if err != nil {
		if errors.Is(err, repository.ErrCertTypeNotFound) {
			return nil, notFound("certificate type with id %d not found", input.CertTypeID)
		}
		return nil, apperr.Generic(err.Error(), "service.recognition", "Create", err)
	}

	var persona *model.Persona
	if input.EmailPersona != nil && *input.EmailPersona != "" {
		persona, err = s.personas.GetPersonaByEmail(ctx, *input.EmailPersona)
		if err != nil {
			if errors.Is(err, repository.ErrPersonaNotFound) {
				return nil, notFound("persona with email %s not found", *input.EmailPersona)
			}
			return nil, apperr.Generic(err.Error(), "service.recognition", "Create", err)
		}
	}

	rec := &model.Recognition{
		ID:                uuid.New().String(),
		CertTypeID:        input.CertTypeID,
		Meeting:           input.Meeting,
		NombreColaborador: input.NombreColaborador,
		EmailPersona:      input.EmailPersona,
	}

	// Durability boundary: after this point the record is committed and
	// nothing below may change the return value.
	created, err := s.store.CreateRecognition(ctx, rec)
	if err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			return nil, notFound("certificate type with id %d not found", input.CertTypeID)
		}
		return nil, apperr.Generic(err.Error(), "service.recognition", "Create", err)
	}

	created.CertTypeTipo = certType.Tipo
	created.CertTypeNombre = certType.Nombre

	s.metrics.IncRecognitionCreated()

	result := &CreateRecognitionResult{Recognition: created}
	if persona != nil {
		result.NotificationErr = s.dispatchNotification(ctx, created, certType, persona)
	}

	return result, nil
}

// dispatchNotification sends the recognition email. Failures are logged
// with full context and swallowed.
func (s *RecognitionService) dispatchNotification(ctx context.Context, rec *model.Recognition, certType *model.CertType, persona *model.Persona) error {
	if s.mailer == nil {
		return nil
	}

	now := time.Now().In(s.opts.Location)
	email := mailer.RecognitionEmail{
		To:          persona.Email,
		UserName:    persona.FullName,
		CertType:    certType.Nombre,
		UserRole:    persona.Role,
		IssueDate:   now.Format("2006-01-02"),
		CTAURL:      s.opts.VerificationBase + "/verificar/" + rec.ID,
		CurrentYear: now.Year(),
	}

	if err := s.mailer.SendRecognition(ctx, email); err != nil {
		s.metrics.IncNotificationFailed()
		s.logger.Error("recognition email dispatch failed",
			slog.String("recognition_id", rec.ID),
			slog.String("recipient", persona.Email),
			slog.String("full_name", persona.FullName),
			slog.String("cert_type", certType.Nombre),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.metrics.IncNotificationSent()
	s.logger.Info("recognition email dispatched",
		slog.String("recognition_id", rec.ID),
		slog.String("recipient", persona.Email),
	)
	return nil
}

// GetAll returns every recognition, newest first.
func (s *RecognitionService) GetAll(ctx context.Context) ([]*model.Recognition, error) {
	recognitions, err := s.store.ListRecognitions(ctx)
	if err != nil {
		return nil, apperr.Generic(err.Error(), "service.recognition", "GetAll", err)
	}
	return recognitions, nil
}

// GetByID returns a recognition, or a NotFoundError for an unknown id.
func (s *RecognitionService) GetByID(ctx context.Context, id string) (*model.Recognition, error) {
	rec, err := s.store.GetRecognitionByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecognitionNotFound) {
			return nil, notFound("no recognition found with id: %s", id)
		}
		return nil, apperr.Generic(err.Error(), "service.recognition", "GetByID", err)
	}
	return rec, nil
}

// GetByColaborador returns a collaborator's recognitions, newest first.
func (s *RecognitionService) GetByColaborador(ctx context.Context, nombre string) ([]*model.Recognition, error) {
	recognitions, err := s.store.ListRecognitionsByColaborador(ctx, nombre)
	if err != nil {
		return nil, apperr.Generic(err.Error(), "service.recognition", "GetByColaborador", err)
	}
	return recognitions, nil
}

// GetByCertTypeID returns all recognitions of one certificate type, newest first.
func (s *RecognitionService) GetByCertTypeID(ctx context.Context, certTypeID int64) ([]*model.Recognition, error) {
	recognitions, err := s.store.ListRecognitionsByCertTypeID(ctx, certTypeID)
	if err != nil {
		return nil, apperr.Generic(err.Error(), "service.recognition", "GetByCertTypeID", err)
	}
	return recognitions, nil
}

// GetByTipo returns all recognitions whose certificate type has the given
// short code, newest first.
func (s *RecognitionService) GetByTipo(ctx context.Context, tipo string) ([]*model.Recognition, error) {
	recognitions, err := s.store.ListRecognitionsByTipo(ctx, tipo)
	if err != nil {
		return nil, apperr.Generic(err.Error(), "service.recognition", "GetByTipo", err)
	}
	return recognitions, nil
}

// Update replaces a recognition's mutable fields.
func (s *RecognitionService) Update(ctx context.Context, id string, input CreateRecognitionInput) (*model.Recognition, error) {
	rec := &model.Recognition{
		CertTypeID:        input.CertTypeID,
		Meeting:           input.Meeting,
		NombreColaborador: input.NombreColaborador,
		EmailPersona:      input.EmailPersona,
	}

	updated, err := s.store.UpdateRecognition(ctx, id, rec)
	if err != nil {
		if errors.Is(err, repository.ErrRecognitionNotFound) {
			return nil, notFound("no recognition found with id: %s", id)
		}
		if errors.Is(err, repository.ErrMissingReference) {
			return nil, notFound("certificate type with id %d not found", input.CertTypeID)
		}
		return nil, apperr.Generic(err.Error(), "service.recognition", "Update", err)
	}

	s.metrics.IncRecognitionUpdated()
	return updated, nil
}

// Delete removes a recognition and returns the deleted record.
func (s *RecognitionService) Delete(ctx context.Context, id string) (*model.Recognition, error) {
	deleted, err := s.store.DeleteRecognition(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecognitionNotFound) {
			return nil, notFound("no recognition found with id: %s", id)
		}
		return nil, apperr.Generic(err.Error(), "service.recognition", "Delete", err)
	}

	s.metrics.IncRecognitionDeleted()
	return deleted, nil
}

// Stats aggregates recognition counts grouped by certificate type.
func (s *RecognitionService) Stats(ctx context.Context) ([]*model.RecognitionStats, error) {
	stats, err := s.store.RecognitionStats(ctx)
	if err != nil {
		return nil, apperr.Generic(err.Error(), "service.recognition", "Stats", err)
	}
	return stats, nil
}
