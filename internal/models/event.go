package models

import (
	"fmt"
	"time"
)

// EventStatus tracks where an event sits in its lifecycle.
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
)

// ParseEventStatus validates a raw event status value.
func ParseEventStatus(raw string) (EventStatus, error) {
	switch s := EventStatus(raw); s {
	case EventUpcoming, EventOngoing, EventCompleted:
		return s, nil
	default:
		return "", fmt.Errorf("unknown event status %q", raw)
	}
}

// Event is a dated happening (hackathon, workshop, demo day) with
// registration tracking.
type Event struct {
	ID                   string      `json:"id"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Date                 string      `json:"date"`
	Type                 string      `json:"type"`
	Participants         string      `json:"participants"`
	Prizes               string      `json:"prizes"`
	Status               EventStatus `json:"status"`
	Image                string      `json:"image,omitempty"`
	MaxRegistrations     int         `json:"max_registrations,omitempty"`
	CurrentRegistrations int         `json:"current_registrations"`
	CreatedBy            string      `json:"created_by"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}
