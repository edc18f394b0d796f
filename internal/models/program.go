package models

import (
	"fmt"
	"time"
)

// ProgramCategory classifies a program offering.
type ProgramCategory string

const (
	CategoryIncubation ProgramCategory = "incubation"
	CategoryCourses    ProgramCategory = "courses"
	CategoryInternship ProgramCategory = "internship"
	CategoryEmployment ProgramCategory = "employment"
)

// ParseProgramCategory validates a raw category value.
func ParseProgramCategory(raw string) (ProgramCategory, error) {
	switch c := ProgramCategory(raw); c {
	case CategoryIncubation, CategoryCourses, CategoryInternship, CategoryEmployment:
		return c, nil
	default:
		return "", fmt.Errorf("unknown program category %q", raw)
	}
}

// Program is an educational or incubation offering visitors can apply to.
// Deleting a program is a soft delete: IsActive flips to false and the
// program disappears from the public listing.
type Program struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Features            []string        `json:"features"`
	Duration            string          `json:"duration"`
	Category            ProgramCategory `json:"category"`
	Image               string          `json:"image,omitempty"`
	IsActive            bool            `json:"is_active"`
	MaxParticipants     int             `json:"max_participants,omitempty"`
	CurrentParticipants int             `json:"current_participants"`
	CreatedBy           string          `json:"created_by"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}
