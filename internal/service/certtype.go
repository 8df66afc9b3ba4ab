package service

import (
	"context"
	"errors"

	"github.com/ixcomercio/recognitions/internal/apperr"
	"github.com/ixcomercio/recognitions/internal/model"
	"github.com/ixcomercio/recognitions/internal/repository"
)

// CertTypeStore is the persistence surface the cert type service needs.
type CertTypeStore interface {
	CreateCertType(ctx context.Context, ct *model.CertType) (*model.CertType, error)
	ListCertTypes(ctx context.Context) ([]*model.CertType, error)
	GetCertTypeByID(ctx context.Context, id int64) (*model.CertType, error)
	GetCertTypeByTipo(ctx context.Context, tipo string) (*model.CertType, error)
	UpdateCertType(ctx context.Context, id int64, ct *model.CertType) (*model.CertType, error)
	DeleteCertType(ctx context.Context, id int64) (*model.CertType, error)
}

// CertTypeService handles certificate type reference data.
type CertTypeService struct {
	store CertTypeStore
}

// NewCertTypeService creates a new CertTypeService.
func NewCertTypeService(store CertTypeStore) *CertTypeService {
	return &CertTypeService{store: store}
}

// Create persists a new certificate type.
func (s *CertTypeService) Create(ctx context.Context, ct *model.CertType) (*model.CertType, error) {
	created, err := s.store.CreateCertType(ctx, ct)
	if err != nil {
		if errors.Is(err, repository.ErrCertTypeExists) {
			return nil, apperr.Generic("certificate type "+ct.Tipo+" already exists", "service.certtype", "Create", err)
		}
		return nil, apperr.Generic(err.Error(), "service.certtype", "Create", err)
	}
	return created, nil
}

// GetAll returns every certificate type, ordered by id.
func (s *CertTypeService) GetAll(ctx context.Context) ([]*model.CertType, error) {
	certTypes, err := s.store.ListCertTypes(ctx)
	if err != nil {
		return nil, apperr.Generic(err.Error(), "service.certtype", "GetAll", err)
	}
	return certTypes, nil
}

// GetByID returns a certificate type, or a NotFoundError for an unknown id.
func (s *CertTypeService) GetByID(ctx context.Context, id int64) (*model.CertType, error) {
	ct, err := s.store.GetCertTypeByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCertTypeNotFound) {
			return nil, notFound("no certificate type found with id: %d", id)
		}
		return nil, apperr.Generic(err.Error(), "service.certtype", "GetByID", err)
	}
	return ct, nil
}

// GetByTipo returns a certificate type by its short code.
func (s *CertTypeService) GetByTipo(ctx context.Context, tipo string) (*model.CertType, error) {
	ct, err := s.store.GetCertTypeByTipo(ctx, tipo)
	if err != nil {
		if errors.Is(err, repository.ErrCertTypeNotFound) {
			return nil, notFound("no certificate type found with tipo: %s", tipo)
		}
		return nil, apperr.Generic(err.Error(), "service.certtype", "GetByTipo", err)
	}
	return ct, nil
}

// Update replaces a certificate type's fields and returns the updated record.
func (s *CertTypeService) Update(ctx context.Context, id int64, ct *model.CertType) (*model.CertType, error) {
	updated, err := s.store.UpdateCertType(ctx, id, ct)
	if err != nil {
		if errors.Is(err, repository.ErrCertTypeNotFound) {
			return nil, notFound("no certificate type found with id: %d", id)
		}
		return nil, apperr.Generic(err.Error(), "service.certtype", "Update", err)
	}
	return updated, nil
}

// Delete removes a certificate type and returns the deleted record.
func (s *CertTypeService) Delete(ctx context.Context, id int64) (*model.CertType, error) {
	deleted, err := s.store.DeleteCertType(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCertTypeNotFound) {
			return nil, notFound("no certificate type found with id: %d", id)
		}
		return nil, apperr.Generic(err.Error(), "service.certtype", "Delete", err)
	}
	return deleted, nil
}
