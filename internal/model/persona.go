// Package model defines the domain entities.
package model

import "time"

// Persona is a registered person. The email address is the primary key
// and is immutable once created; recognitions reference it.
type Persona struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	URLImage string `json:"url_image"`
	Team     string `json:"team"`
	Role     string `json:"role"`
	Admin    bool   `json:"admin"`
	Enabled  bool   `json:"enabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
