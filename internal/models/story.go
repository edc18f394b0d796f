package models

import "time"

// SuccessStory is a published alumni highlight shown on the public site.
type SuccessStory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Company     string    `json:"company"`
	Story       string    `json:"story"`
	Achievement string    `json:"achievement"`
	Image       string    `json:"image,omitempty"`
	IsPublished bool      `json:"is_published"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
