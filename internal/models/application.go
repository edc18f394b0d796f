package models

import (
	"fmt"
	"time"
)

// ApplicationStatus tracks review progress of a submission.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationReviewed ApplicationStatus = "REVIEWED"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// ParseApplicationStatus validates a raw application status value.
func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	switch s := ApplicationStatus(raw); s {
	case ApplicationPending, ApplicationReviewed, ApplicationApproved, ApplicationRejected:
		return s, nil
	default:
		return "", fmt.Errorf("unknown application status %q", raw)
	}
}

// ApplicationType says whether the application targets a program or an event.
type ApplicationType string

const (
	ApplicationProgram ApplicationType = "PROGRAM"
	ApplicationEvent   ApplicationType = "EVENT"
)

// ParseApplicationType validates a raw application type value.
func ParseApplicationType(raw string) (ApplicationType, error) {
	switch t := ApplicationType(raw); t {
	case ApplicationProgram, ApplicationEvent:
		return t, nil
	default:
		return "", fmt.Errorf("unknown application type %q", raw)
	}
}

// ApplicationForm is the applicant-supplied form payload.
type ApplicationForm struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Experience   string `json:"experience,omitempty"`
	Motivation   string `json:"motivation,omitempty"`
	Organization string `json:"organization,omitempty"`
}

// Application is a user's submission against a program or event.
// A user may apply at most once per target.
type Application struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	ProgramID   string            `json:"program_id,omitempty"`
	EventID     string            `json:"event_id,omitempty"`
	Type        ApplicationType   `json:"type"`
	FormData    ApplicationForm   `json:"form_data"`
	Status      ApplicationStatus `json:"status"`
	ReviewNotes string            `json:"review_notes,omitempty"`
	ReviewedBy  string            `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time        `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
