// Package storage defines the persistence contracts consumed by the service
// and handler layers. Record ids are assigned by the caller at creation, not
// by the store. Concurrent updates to the same record are last-write-wins.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/rsinnovation/hub-api/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserFilter narrows admin user listings.
type UserFilter struct {
	Role     string
	IsActive *bool
	Skip     int
	Limit    int
}

// ProgramFilter narrows program listings.
type ProgramFilter struct {
	Category string
	IsActive *bool
	Skip     int
	Limit    int
}

// EventFilter narrows event listings.
type EventFilter struct {
	Status string
	Skip   int
	Limit  int
}

// ApplicationFilter narrows admin application listings.
type ApplicationFilter struct {
	Status string
	Type   string
	Skip   int
	Limit  int
}

// ContactFilter narrows admin contact listings.
type ContactFilter struct {
	Status string
	Skip   int
	Limit  int
}

// StoryFilter narrows success story listings.
type StoryFilter struct {
	IsPublished *bool
	Skip        int
	Limit       int
}

// UserStore persists user accounts. Email is unique across live records.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) error
	FindUserByID(ctx context.Context, id string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) error
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context, filter UserFilter) ([]models.User, error)
}

// ProgramStore persists program offerings.
type ProgramStore interface {
	CreateProgram(ctx context.Context, program models.Program) error
	FindProgramByID(ctx context.Context, id string) (models.Program, error)
	UpdateProgram(ctx context.Context, program models.Program) error
	ListPrograms(ctx context.Context, filter ProgramFilter) ([]models.Program, error)
	IncrementParticipants(ctx context.Context, id string) error
}

// EventStore persists events.
type EventStore interface {
	CreateEvent(ctx context.Context, event models.Event) error
	FindEventByID(ctx context.Context, id string) (models.Event, error)
	UpdateEvent(ctx context.Context, event models.Event) error
	DeleteEvent(ctx context.Context, id string) error
	ListEvents(ctx context.Context, filter EventFilter) ([]models.Event, error)
	IncrementRegistrations(ctx context.Context, id string) error
}

// ApplicationStore persists applications.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, app models.Application) error
	FindApplicationByID(ctx context.Context, id string) (models.Application, error)
	UpdateApplication(ctx context.Context, app models.Application) error
	DeleteApplication(ctx context.Context, id string) error
	ListApplications(ctx context.Context, filter ApplicationFilter) ([]models.Application, error)
	ListApplicationsByUser(ctx context.Context, userID string) ([]models.Application, error)
	UserHasApplied(ctx context.Context, userID, programID, eventID string) (bool, error)
}

// ContactStore persists contact requests.
type ContactStore interface {
	CreateContact(ctx context.Context, contact models.Contact) error
	FindContactByID(ctx context.Context, id string) (models.Contact, error)
	UpdateContact(ctx context.Context, contact models.Contact) error
	DeleteContact(ctx context.Context, id string) error
	ListContacts(ctx context.Context, filter ContactFilter) ([]models.Contact, error)
}

// StoryStore persists success stories.
type StoryStore interface {
	CreateStory(ctx context.Context, story models.SuccessStory) error
	FindStoryByID(ctx context.Context, id string) (models.SuccessStory, error)
	UpdateStory(ctx context.Context, story models.SuccessStory) error
	DeleteStory(ctx context.Context, id string) error
	ListStories(ctx context.Context, filter StoryFilter) ([]models.SuccessStory, error)
}

// StatsStore aggregates dashboard figures. since bounds the recent-activity
// window (callers pass now minus 30 days).
type StatsStore interface {
	DashboardStats(ctx context.Context, since time.Time) (models.DashboardStats, error)
}

// Store is the full persistence surface used by the server.
type Store interface {
	UserStore
	ProgramStore
	EventStore
	ApplicationStore
	ContactStore
	StoryStore
	StatsStore
}
