package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ixcomercio/recognitions/internal/model"
)

// Common errors for persona repository operations.
var (
	ErrPersonaNotFound = errors.New("persona not found")
	ErrPersonaExists   = errors.New("persona already exists")
)

// CreatePersona inserts a new persona keyed by email.
func (r *Repository) CreatePersona(ctx context.Context, p *model.Persona) (*model.Persona, error) {
	query := `
		INSERT INTO persona (email, full_name, url_image, team, role, admin, enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING email, full_name, url_image, team, role, admin, enabled, created_at, updated_at
	`

	created, err := scanPersona(r.pool.QueryRow(ctx, query,
		p.Email, p.FullName, p.URLImage, p.Team, p.Role, p.Admin, p.Enabled,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrPersonaExists
		}
		return nil, fmt.Errorf("failed to create persona: %w", err)
	}

	return created, nil
}

// ListPersonas returns all personas ordered by email.
func (r *Repository) ListPersonas(ctx context.Context) ([]*model.Persona, error) {
	query := `
		SELECT email, full_name, url_image, team, role, admin, enabled, created_at, updated_at
		FROM persona
		ORDER BY email
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list personas: %w", err)
	}
	defer rows.Close()

	var personas []*model.Persona
	for rows.Next() {
		p, err := scanPersona(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan persona: %w", err)
		}
		personas = append(personas, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating personas: %w", err)
	}

	return personas, nil
}

// GetPersonaByEmail retrieves a persona by its email.
func (r *Repository) GetPersonaByEmail(ctx context.Context, email string) (*model.Persona, error) {
	query := `
		SELECT email, full_name, url_image, team, role, admin, enabled, created_at, updated_at
		FROM persona
		WHERE email = $1
	`

	p, err := scanPersona(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPersonaNotFound
		}
		return nil, fmt.Errorf("failed to get persona by email: %w", err)
	}

	return p, nil
}

// UpdatePersona updates a persona's mutable fields. The email key never changes.
func (r *Repository) UpdatePersona(ctx context.Context, email string, p *model.Persona) (*model.Persona, error) {
	query := `
		UPDATE persona
		SET full_name = $2, url_image = $3, team = $4, role = $5, admin = $6, enabled = $7, updated_at = NOW()
		WHERE email = $1
		RETURNING email, full_name, url_image, team, role, admin, enabled, created_at, updated_at
	`

	updated, err := scanPersona(r.pool.QueryRow(ctx, query,
		email, p.FullName, p.URLImage, p.Team, p.Role, p.Admin, p.Enabled,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPersonaNotFound
		}
		return nil, fmt.Errorf("failed to update persona: %w", err)
	}

	return updated, nil
}

// DeletePersona removes a persona and returns the deleted record.
func (r *Repository) DeletePersona(ctx context.Context, email string) (*model.Persona, error) {
	query := `
		DELETE FROM persona
		WHERE email = $1
		RETURNING email, full_name, url_image, team, role, admin, enabled, created_at, updated_at
	`

	deleted, err := scanPersona(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPersonaNotFound
		}
		return nil, fmt.Errorf("failed to delete persona: %w", err)
	}

	return deleted, nil
}

// scanPersona scans a single row into a Persona model.
func scanPersona(row pgx.Row) (*model.Persona, error) {
	var p model.Persona
	err := row.Scan(
		&p.Email,
		&p.FullName,
		&p.URLImage,
		&p.Team,
		&p.Role,
		&p.Admin,
		&p.Enabled,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return &p, err
}
