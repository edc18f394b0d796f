// Package memory provides an in-memory storage.Store used by tests.
// Semantics mirror the Postgres store: caller-assigned ids, unique user
// emails, last-write-wins updates.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rsinnovation/hub-api/internal/models"
	"github.com/rsinnovation/hub-api/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps every entity in process memory behind a single mutex.
type Store struct {
	mu           sync.RWMutex
	users        map[string]models.User
	programs     map[string]models.Program
	events       map[string]models.Event
	applications map[string]models.Application
	contacts     map[string]models.Contact
	stories      map[string]models.SuccessStory
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[string]models.User),
		programs:     make(map[string]models.Program),
		events:       make(map[string]models.Event),
		applications: make(map[string]models.Application),
		contacts:     make(map[string]models.Contact),
		stories:      make(map[string]models.SuccessStory),
	}
}

// --- users ---

func (s *Store) CreateUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return storage.ErrAlreadyExists
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *Store) FindUserByID(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *Store) UpdateUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return storage.ErrNotFound
	}
	s.users[user.ID] = user
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *Store) ListUsers(_ context.Context, filter storage.UserFilter) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.User
	for _, user := range s.users {
		if filter.Role != "" && string(user.Role) != filter.Role {
			continue
		}
		if filter.IsActive != nil && user.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, filter.Skip, filter.Limit), nil
}

// --- programs ---

func (s *Store) CreateProgram(_ context.Context, program models.Program) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.programs[program.ID] = program
	return nil
}

func (s *Store) FindProgramByID(_ context.Context, id string) (models.Program, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	program, ok := s.programs[id]
	if !ok {
		return models.Program{}, storage.ErrNotFound
	}
	return program, nil
}

func (s *Store) UpdateProgram(_ context.Context, program models.Program) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.programs[program.ID]
	if !ok {
		return storage.ErrNotFound
	}
	program.CurrentParticipants = existing.CurrentParticipants
	s.programs[program.ID] = program
	return nil
}

func (s *Store) ListPrograms(_ context.Context, filter storage.ProgramFilter) ([]models.Program, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Program
	for _, program := range s.programs {
		if filter.Category != "" && string(program.Category) != filter.Category {
			continue
		}
		if filter.IsActive != nil && program.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, program)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, filter.Skip, filter.Limit), nil
}

func (s *Store) IncrementParticipants(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	program, ok := s.programs[id]
	if !ok {
		return storage.ErrNotFound
	}
	program.CurrentParticipants++
	program.UpdatedAt = time.Now().UTC()
	s.programs[id] = program
	return nil
}

// --- events ---

func (s *Store) CreateEvent(_ context.Context, event models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ID] = event
	return nil
}

func (s *Store) FindEventByID(_ context.Context, id string) (models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events[id]
	if !ok {
		return models.Event{}, storage.ErrNotFound
	}
	return event, nil
}

func (s *Store) UpdateEvent(_ context.Context, event models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.events[event.ID]
	if !ok {
		return storage.ErrNotFound
	}
	event.CurrentRegistrations = existing.CurrentRegistrations
	s.events[event.ID] = event
	return nil
}

func (s *Store) DeleteEvent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.events, id)
	return nil
}

func (s *Store) ListEvents(_ context.Context, filter storage.EventFilter) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Event
	for _, event := range s.events {
		if filter.Status != "" && string(event.Status) != filter.Status {
			continue
		}
		out = append(out, event)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, filter.Skip, filter.Limit), nil
}

func (s *Store) IncrementRegistrations(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok {
		return storage.ErrNotFound
	}
	event.CurrentRegistrations++
	event.UpdatedAt = time.Now().UTC()
	s.events[id] = event
	return nil
}

// --- applications ---

func (s *Store) CreateApplication(_ context.Context, app models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applications[app.ID] = app
	return nil
}

func (s *Store) FindApplicationByID(_ context.Context, id string) (models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.applications[id]
	if !ok {
		return models.Application{}, storage.ErrNotFound
	}
	return app, nil
}

func (s *Store) UpdateApplication(_ context.Context, app models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.applications[app.ID]; !ok {
		return storage.ErrNotFound
	}
	s.applications[app.ID] = app
	return nil
}

func (s *Store) DeleteApplication(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.applications[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.applications, id)
	return nil
}

func (s *Store) ListApplications(_ context.Context, filter storage.ApplicationFilter) ([]models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Application
	for _, app := range s.applications {
		if filter.Status != "" && string(app.Status) != filter.Status {
			continue
		}
		if filter.Type != "" && string(app.Type) != filter.Type {
			continue
		}
		out = append(out, app)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, filter.Skip, filter.Limit), nil
}

func (s *Store) ListApplicationsByUser(_ context.Context, userID string) ([]models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Application
	for _, app := range s.applications {
		if app.UserID == userID {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UserHasApplied(_ context.Context, userID, programID, eventID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, app := range s.applications {
		if app.UserID != userID {
			continue
		}
		if programID != "" && app.ProgramID == programID {
			return true, nil
		}
		if eventID != "" && app.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

// --- contacts ---

func (s *Store) CreateContact(_ context.Context, contact models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts[contact.ID] = contact
	return nil
}

func (s *Store) FindContactByID(_ context.Context, id string) (models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	contact, ok := s.contacts[id]
	if !ok {
		return models.Contact{}, storage.ErrNotFound
	}
	return contact, nil
}

func (s *Store) UpdateContact(_ context.Context, contact models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[contact.ID]; !ok {
		return storage.ErrNotFound
	}
	s.contacts[contact.ID] = contact
	return nil
}

func (s *Store) DeleteContact(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.contacts, id)
	return nil
}

func (s *Store) ListContacts(_ context.Context, filter storage.ContactFilter) ([]models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Contact
	for _, contact := range s.contacts {
		if filter.Status != "" && string(contact.Status) != filter.Status {
			continue
		}
		out = append(out, contact)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, filter.Skip, filter.Limit), nil
}

// --- stories ---

func (s *Store) CreateStory(_ context.Context, story models.SuccessStory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stories[story.ID] = story
	return nil
}

func (s *Store) FindStoryByID(_ context.Context, id string) (models.SuccessStory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	story, ok := s.stories[id]
	if !ok {
		return models.SuccessStory{}, storage.ErrNotFound
	}
	return story, nil
}

func (s *Store) UpdateStory(_ context.Context, story models.SuccessStory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stories[story.ID]; !ok {
		return storage.ErrNotFound
	}
	s.stories[story.ID] = story
	return nil
}

func (s *Store) DeleteStory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stories[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.stories, id)
	return nil
}

func (s *Store) ListStories(_ context.Context, filter storage.StoryFilter) ([]models.SuccessStory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.SuccessStory
	for _, story := range s.stories {
		if filter.IsPublished != nil && story.IsPublished != *filter.IsPublished {
			continue
		}
		out = append(out, story)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, filter.Skip, filter.Limit), nil
}

// --- stats ---

func (s *Store) DashboardStats(_ context.Context, since time.Time) (models.DashboardStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats models.DashboardStats
	stats.Breakdowns.ApplicationStatus = make(map[string]int)
	stats.Breakdowns.ContactStatus = make(map[string]int)
	stats.Breakdowns.ProgramCategories = make(map[string]int)

	for _, user := range s.users {
		if user.IsActive {
			stats.Totals.Users++
			if !user.CreatedAt.Before(since) {
				stats.RecentActivity.NewUsers++
			}
		}
	}
	for _, program := range s.programs {
		if program.IsActive {
			stats.Totals.Programs++
			stats.Breakdowns.ProgramCategories[string(program.Category)]++
		}
	}
	stats.Totals.Events = len(s.events)

	var apps []models.Application
	for _, app := range s.applications {
		stats.Totals.Applications++
		stats.Breakdowns.ApplicationStatus[string(app.Status)]++
		if !app.CreatedAt.Before(since) {
			stats.RecentActivity.NewApplications++
		}
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].CreatedAt.After(apps[j].CreatedAt) })
	for _, app := range page(apps, 0, 5) {
		stats.RecentItems.Applications = append(stats.RecentItems.Applications, models.ApplicationSummary{
			ID:            app.ID,
			ApplicantName: app.FormData.Name,
			Type:          app.Type,
			Status:        app.Status,
			CreatedAt:     app.CreatedAt,
		})
	}

	var contacts []models.Contact
	for _, contact := range s.contacts {
		stats.Totals.Contacts++
		stats.Breakdowns.ContactStatus[string(contact.Status)]++
		if !contact.CreatedAt.Before(since) {
			stats.RecentActivity.NewContacts++
		}
		contacts = append(contacts, contact)
	}
	sort.Slice(contacts, func(i, j int) bool { return contacts[i].CreatedAt.After(contacts[j].CreatedAt) })
	for _, contact := range page(contacts, 0, 5) {
		stats.RecentItems.Contacts = append(stats.RecentItems.Contacts, models.ContactSummary{
			ID:        contact.ID,
			Name:      contact.Name,
			Subject:   contact.Subject,
			Status:    contact.Status,
			CreatedAt: contact.CreatedAt,
		})
	}

	for _, story := range s.stories {
		if story.IsPublished {
			stats.Totals.SuccessStories++
		}
	}

	return stats, nil
}

func page[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return nil
	}
	items = items[skip:]
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
