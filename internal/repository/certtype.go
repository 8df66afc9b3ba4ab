package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ixcomercio/recognitions/internal/model"
)

// Common errors for cert type repository operations.
var (
	ErrCertTypeNotFound = errors.New("cert type not found")
	ErrCertTypeExists   = errors.New("cert type already exists")
)

// CreateCertType inserts a new certificate type.
// Tipo uniqueness is enforced by the database.
func (r *Repository) CreateCertType(ctx context.Context, ct *model.CertType) (*model.CertType, error) {
	query := `
		INSERT INTO cert_type (tipo, nombre)
		VALUES ($1, $2)
		RETURNING id, tipo, nombre, created_at, updated_at
	`

	created, err := scanCertType(r.pool.QueryRow(ctx, query, ct.Tipo, ct.Nombre))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCertTypeExists
		}
		return nil, fmt.Errorf("failed to create cert type: %w", err)
	}

	return created, nil
}

// ListCertTypes returns all certificate types ordered by id.
func (r *Repository) ListCertTypes(ctx context.Context) ([]*model.CertType, error) {
	query := `
		SELECT id, tipo, nombre, created_at, updated_at
		FROM cert_type
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cert types: %w", err)
	}
	defer rows.Close()

	var certTypes []*model.CertType
	for rows.Next() {
		ct, err := scanCertType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cert type: %w", err)
		}
		certTypes = append(certTypes, ct)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cert types: %w", err)
	}

	return certTypes, nil
}

// GetCertTypeByID retrieves a certificate type by its id.
func (r *Repository) GetCertTypeByID(ctx context.Context, id int64) (*model.CertType, error) {
	query := `
		SELECT id, tipo, nombre, created_at, updated_at
		FROM cert_type
		WHERE id = $1
	`

	ct, err := scanCertType(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCertTypeNotFound
		}
		return nil, fmt.Errorf("failed to get cert type by id: %w", err)
	}

	return ct, nil
}

// GetCertTypeByTipo retrieves a certificate type by its short code.
func (r *Repository) GetCertTypeByTipo(ctx context.Context, tipo string) (*model.CertType, error) {
	query := `
		SELECT id, tipo, nombre, created_at, updated_at
		FROM cert_type
		WHERE tipo = $1
	`

	ct, err := scanCertType(r.pool.QueryRow(ctx, query, tipo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCertTypeNotFound
		}
		return nil, fmt.Errorf("failed to get cert type by tipo: %w", err)
	}

	return ct, nil
}

// UpdateCertType updates a certificate type and returns the updated record.
func (r *Repository) UpdateCertType(ctx context.Context, id int64, ct *model.CertType) (*model.CertType, error) {
	query := `
		UPDATE cert_type
		SET tipo = $2, nombre = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, tipo, nombre, created_at, updated_at
	`

	updated, err := scanCertType(r.pool.QueryRow(ctx, query, id, ct.Tipo, ct.Nombre))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCertTypeNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrCertTypeExists
		}
		return nil, fmt.Errorf("failed to update cert type: %w", err)
	}

	return updated, nil
}

// DeleteCertType removes a certificate type and returns the deleted record.
func (r *Repository) DeleteCertType(ctx context.Context, id int64) (*model.CertType, error) {
	query := `
		DELETE FROM cert_type
		WHERE id = $1
		RETURNING id, tipo, nombre, created_at, updated_at
	`

	deleted, err := scanCertType(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCertTypeNotFound
		}
		return nil, fmt.Errorf("failed to delete cert type: %w", err)
	}

	return deleted, nil
}

// scanCertType scans a single row into a CertType model.
func scanCertType(row pgx.Row) (*model.CertType, error) {
	var ct model.CertType
	err := row.Scan(
		&ct.ID,
		&ct.Tipo,
		&ct.Nombre,
		&ct.CreatedAt,
		&ct.UpdatedAt,
	)
	return &ct, err
}
