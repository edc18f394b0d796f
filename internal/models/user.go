package models

import "time"

// User captures application-facing fields for an authenticated identity.
// PasswordHash is empty for accounts created through Google sign-in; such
// accounts can never authenticate with a password.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           Role      `json:"role"`
	Phone          string    `json:"phone,omitempty"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	GoogleID       string    `json:"-"`
	PasswordHash   string    `json:"-"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
