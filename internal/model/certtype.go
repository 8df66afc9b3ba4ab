package model

import "time"

// CertType is a reference entity defining a category of certificate
// (e.g. KUDOS, ACHIEVEMENT). Tipo is unique at the persistence layer.
type CertType struct {
	ID     int64  `json:"id"`
	Tipo   string `json:"tipo"`
	Nombre string `json:"nombre"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
