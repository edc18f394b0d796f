package models

import (
	"fmt"
	"time"
)

// ContactStatus tracks the handling state of a contact request.
type ContactStatus string

const (
	ContactUnread  ContactStatus = "UNREAD"
	ContactRead    ContactStatus = "read"
	ContactReplied ContactStatus = "REPLIED"
)

// ParseContactStatus validates a raw contact status value.
func ParseContactStatus(raw string) (ContactStatus, error) {
	switch s := ContactStatus(raw); s {
	case ContactUnread, ContactRead, ContactReplied:
		return s, nil
	default:
		return "", fmt.Errorf("unknown contact status %q", raw)
	}
}

// Contact is an inbound message from the public contact form.
type Contact struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	Subject      string        `json:"subject"`
	Message      string        `json:"message"`
	Status       ContactStatus `json:"status"`
	ReplyMessage string        `json:"reply_message,omitempty"`
	RepliedBy    string        `json:"replied_by,omitempty"`
	RepliedAt    *time.Time    `json:"replied_at,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
