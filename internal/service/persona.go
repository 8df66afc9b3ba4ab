package service

import (
	"context"
	"errors"

	"github.com/ixcomercio/recognitions/internal/apperr"
	"github.com/ixcomercio/recognitions/internal/model"
	"github.com/ixcomercio/recognitions/internal/repository"
)

// PersonaStore is the persistence surface the persona service needs.
type PersonaStore interface {
	CreatePersona(ctx context.Context, p *model.Persona) (*model.Persona, error)
	ListPersonas(ctx context.Context) ([]*model.Persona, error)
	GetPersonaByEmail(ctx context.Context, email string) (*model.Persona, error)
	UpdatePersona(ctx context.Context, email string, p *model.Persona) (*model.Persona, error)
	DeletePersona(ctx context.Context, email string) (*model.Persona, error)
}

// PersonaService handles persona reference data.
type PersonaService struct {
	store PersonaStore
}

// NewPersonaService creates a new PersonaService.
func NewPersonaService(store PersonaStore) *PersonaService {
	return &PersonaService{store: store}
}

// Create persists a new persona.
func (s *PersonaService) Create(ctx context.Context, p *model.Persona) (*model.Persona, error) {
	created, err := s.store.CreatePersona(ctx, p)
	if err != nil {
		if errors.Is(err, repository.ErrPersonaExists) {
			return nil, apperr.Generic("persona with email "+p.Email+" already exists", "service.persona", "Create", err)
		}
		return nil, apperr.Generic(err.Error(), "service.persona", "Create", err)
	}
	return created, nil
}

// GetAll returns every persona, ordered by email.
func (s *PersonaService) GetAll(ctx context.Context) ([]*model.Persona, error) {
	personas, err := s.store.ListPersonas(ctx)
	if err != nil {
		return nil, apperr.Generic(err.Error(), "service.persona", "GetAll", err)
	}
	return personas, nil
}

// GetByEmail returns a persona, or a NotFoundError when the email is unknown.
func (s *PersonaService) GetByEmail(ctx context.Context, email string) (*model.Persona, error) {
	p, err := s.store.GetPersonaByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrPersonaNotFound) {
			return nil, notFound("no persona found with email: %s", email)
		}
		return nil, apperr.Generic(err.Error(), "service.persona", "GetByEmail", err)
	}
	return p, nil
}

// Update replaces a persona's mutable fields. The email key is immutable.
func (s *PersonaService) Update(ctx context.Context, email string, p *model.Persona) (*model.Persona, error) {
	updated, err := s.store.UpdatePersona(ctx, email, p)
	if err != nil {
		if errors.Is(err, repository.ErrPersonaNotFound) {
			return nil, notFound("no persona found with email: %s", email)
		}
		return nil, apperr.Generic(err.Error(), "service.persona", "Update", err)
	}
	return updated, nil
}

// Delete removes a persona and returns the deleted record.
func (s *PersonaService) Delete(ctx context.Context, email string) (*model.Persona, error) {
	deleted, err := s.store.DeletePersona(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrPersonaNotFound) {
			return nil, notFound("no persona found with email: %s", email)
		}
		return nil, apperr.Generic(err.Error(), "service.persona", "Delete", err)
	}
	return deleted, nil
}
