package model

import "time"

// Recognition grants a certificate to a collaborator for a given meeting.
// CertTypeID must resolve to an existing CertType at creation time.
// EmailPersona is optional; when set it must resolve to an existing Persona
// and a notification email is dispatched on create (best effort).
type Recognition struct {
	ID                string  `json:"id"`
	CertTypeID        int64   `json:"cert_type_id"`
	Meeting           string  `json:"meeting"`
	NombreColaborador string  `json:"nombre_colaborador"`
	EmailPersona      *string `json:"email_persona,omitempty"`

	// Denormalized display fields populated on reads.
	CertTypeTipo   string `json:"cert_type_tipo,omitempty"`
	CertTypeNombre string `json:"cert_type_nombre,omitempty"`
	PersonaName    string `json:"persona_full_name,omitempty"`
	PersonaTeam    string `json:"persona_team,omitempty"`
	PersonaRole    string `json:"persona_role,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecognitionStats is one row of the grouped-by-type stats aggregate.
type RecognitionStats struct {
	Tipo                 string `json:"tipo"`
	Nombre               string `json:"nombre"`
	CountByType          int64  `json:"count_by_type"`
	TotalReconocimientos int64  `json:"total_reconocimientos"`
	Colaboradores        int64  `json:"colaboradores"`
}
