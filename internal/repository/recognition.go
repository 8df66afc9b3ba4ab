package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ixcomercio/recognitions/internal/model"
)

// Common errors for recognition repository operations.
var (
	ErrRecognitionNotFound = errors.New("recognition not found")
	ErrMissingReference    = errors.New("referenced entity does not exist")
)

// recognitionColumns is the select list shared by all recognition reads.
// cert_type and persona are joined for denormalized display fields.
const recognitionColumns = `
	r.id, r.cert_type_id, r.meeting, r.nombre_colaborador, r.email_persona,
	ct.tipo, ct.nombre,
	COALESCE(p.full_name, ''), COALESCE(p.team, ''), COALESCE(p.role, ''),
	r.created_at, r.updated_at
`

const recognitionJoins = `
	FROM reconocimiento r
	JOIN cert_type ct ON r.cert_type_id = ct.id
	LEFT JOIN persona p ON r.email_persona = p.email
`

// CreateRecognition inserts a new recognition row.
// The schema carries real foreign keys; a violation surfaces as
// ErrMissingReference rather than a raw driver error.
func (r *Repository) CreateRecognition(ctx context.Context, rec *model.Recognition) (*model.Recognition, error) {
	query := `
		INSERT INTO reconocimiento (id, cert_type_id, meeting, nombre_colaborador, email_persona)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, cert_type_id, meeting, nombre_colaborador, email_persona, created_at, updated_at
	`

	var created model.Recognition
	err := r.pool.QueryRow(ctx, query,
		rec.ID, rec.CertTypeID, rec.Meeting, rec.NombreColaborador, rec.EmailPersona,
	).Scan(
		&created.ID,
		&created.CertTypeID,
		&created.Meeting,
		&created.NombreColaborador,
		&created.EmailPersona,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrMissingReference
		}
		return nil, fmt.Errorf("failed to create recognition: %w", err)
	}

	return &created, nil
}

// ListRecognitions returns all recognitions, newest first.
func (r *Repository) ListRecognitions(ctx context.Context) ([]*model.Recognition, error) {
	query := `SELECT ` + recognitionColumns + recognitionJoins + `
		ORDER BY r.created_at DESC, r.id DESC
	`
	return r.queryRecognitions(ctx, query)
}

// GetRecognitionByID retrieves a recognition by its id.
func (r *Repository) GetRecognitionByID(ctx context.Context, id string) (*model.Recognition, error) {
	query := `SELECT ` + recognitionColumns + recognitionJoins + `
		WHERE r.id = $1
	`

	rec, err := scanRecognition(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecognitionNotFound
		}
		return nil, fmt.Errorf("failed to get recognition by id: %w", err)
	}

	return rec, nil
}

// ListRecognitionsByColaborador returns recognitions for a collaborator name, newest first.
func (r *Repository) ListRecognitionsByColaborador(ctx context.Context, nombre string) ([]*model.Recognition, error) {
	query := `SELECT ` + recognitionColumns + recognitionJoins + `
		WHERE r.nombre_colaborador = $1
		ORDER BY r.created_at DESC, r.id DESC
	`
	return r.queryRecognitions(ctx, query, nombre)
}

// ListRecognitionsByCertTypeID returns recognitions of one certificate type, newest first.
func (r *Repository) ListRecognitionsByCertTypeID(ctx context.Context, certTypeID int64) ([]*model.Recognition, error) {
	query := `SELECT ` + recognitionColumns + recognitionJoins + `
		WHERE r.cert_type_id = $1
		ORDER BY r.created_at DESC, r.id DESC
	`
	return r.queryRecognitions(ctx, query, certTypeID)
}

// ListRecognitionsByTipo returns recognitions whose certificate type has the
// given short code, newest first.
func (r *Repository) ListRecognitionsByTipo(ctx context.Context, tipo string) ([]*model.Recognition, error) {
	query := `SELECT ` + recognitionColumns + recognitionJoins + `
		WHERE ct.tipo = $1
		ORDER BY r.created_at DESC, r.id DESC
	`
	return r.queryRecognitions(ctx, query, tipo)
}

// UpdateRecognition updates the mutable fields of a recognition.
func (r *Repository) UpdateRecognition(ctx context.Context, id string, rec *model.Recognition) (*model.Recognition, error) {
	query := `
		UPDATE reconocimiento
		SET cert_type_id = $2, meeting = $3, nombre_colaborador = $4, email_persona = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id, cert_type_id, meeting, nombre_colaborador, email_persona, created_at, updated_at
	`

	var updated model.Recognition
	err := r.pool.QueryRow(ctx, query,
		id, rec.CertTypeID, rec.Meeting, rec.NombreColaborador, rec.EmailPersona,
	).Scan(
		&updated.ID,
		&updated.CertTypeID,
		&updated.Meeting,
		&updated.NombreColaborador,
		&updated.EmailPersona,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecognitionNotFound
		}
		if isForeignKeyViolation(err) {
			return nil, ErrMissingReference
		}
		return nil, fmt.Errorf("failed to update recognition: %w", err)
	}

	return &updated, nil
}

// DeleteRecognition removes a recognition and returns the deleted record.
// Hard delete, no soft-delete flag.
func (r *Repository) DeleteRecognition(ctx context.Context, id string) (*model.Recognition, error) {
	query := `
		DELETE FROM reconocimiento
		WHERE id = $1
		RETURNING id, cert_type_id, meeting, nombre_colaborador, email_persona, created_at, updated_at
	`

	var deleted model.Recognition
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&deleted.ID,
		&deleted.CertTypeID,
		&deleted.Meeting,
		&deleted.NombreColaborador,
		&deleted.EmailPersona,
		&deleted.CreatedAt,
		&deleted.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecognitionNotFound
		}
		return nil, fmt.Errorf("failed to delete recognition: %w", err)
	}

	return &deleted, nil
}

// RecognitionStats aggregates recognition counts grouped by certificate type,
// ordered by count descending.
func (r *Repository) RecognitionStats(ctx context.Context) ([]*model.RecognitionStats, error) {
	query := `
		SELECT
			ct.tipo,
			ct.nombre,
			COUNT(*) AS count_by_type,
			(SELECT COUNT(*) FROM reconocimiento) AS total_reconocimientos,
			COUNT(DISTINCT r.nombre_colaborador) AS colaboradores
		FROM reconocimiento r
		JOIN cert_type ct ON r.cert_type_id = ct.id
		GROUP BY ct.tipo, ct.nombre
		ORDER BY count_by_type DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get recognition stats: %w", err)
	}
	defer rows.Close()

	var stats []*model.RecognitionStats
	for rows.Next() {
		var s model.RecognitionStats
		if err := rows.Scan(&s.Tipo, &s.Nombre, &s.CountByType, &s.TotalReconocimientos, &s.Colaboradores); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		stats = append(stats, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stats: %w", err)
	}

	return stats, nil
}

// queryRecognitions runs a multi-row recognition query.
func (r *Repository) queryRecognitions(ctx context.Context, query string, args ...any) ([]*model.Recognition, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recognitions: %w", err)
	}
	defer rows.Close()

	var recognitions []*model.Recognition
	for rows.Next() {
		rec, err := scanRecognition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recognition: %w", err)
		}
		recognitions = append(recognitions, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recognitions: %w", err)
	}

	return recognitions, nil
}

// scanRecognition scans a joined row into a Recognition model.
func scanRecognition(row pgx.Row) (*model.Recognition, error) {
	var rec model.Recognition
	err := row.Scan(
		&rec.ID,
		&rec.CertTypeID,
		&rec.Meeting,
		&rec.NombreColaborador,
		&rec.EmailPersona,
		&rec.CertTypeTipo,
		&rec.CertTypeNombre,
		&rec.PersonaName,
		&rec.PersonaTeam,
		&rec.PersonaRole,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	return &rec, err
}
