package dto

import "github.com/rsinnovation/hub-api/internal/models"

type ProgramRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Features        []string `json:"features"`
	Duration        string   `json:"duration"`
	Category        string   `json:"category"`
	Image           string   `json:"image,omitempty"`
	MaxParticipants int      `json:"max_participants,omitempty"`
}

type EventRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Date             string `json:"date"`
	Type             string `json:"type"`
	Participants     string `json:"participants"`
	Prizes           string `json:"prizes"`
	Status           string `json:"status,omitempty"`
	Image            string `json:"image,omitempty"`
	MaxRegistrations int    `json:"max_registrations,omitempty"`
}

type StoryRequest struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	Story       string `json:"story"`
	Achievement string `json:"achievement"`
	Image       string `json:"image,omitempty"`
}

type PublishRequest struct {
	IsPublished *bool `json:"is_published,omitempty"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type ContactReplyRequest struct {
	ReplyMessage string `json:"reply_message"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type ApplicationRequest struct {
	ProgramID string                 `json:"program_id,omitempty"`
	EventID   string                 `json:"event_id,omitempty"`
	Type      string                 `json:"type"`
	FormData  models.ApplicationForm `json:"form_data"`
}

type ApplicationReviewRequest struct {
	Status      string `json:"status"`
	ReviewNotes string `json:"review_notes,omitempty"`
}
