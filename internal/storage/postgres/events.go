package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rsinnovation/hub-api/internal/models"
	"github.com/rsinnovation/hub-api/internal/storage"
)

const eventColumns = `id, title, description, event_date, event_type, participants, prizes, status, image, max_registrations, current_registrations, created_by, created_at, updated_at`

// CreateEvent inserts a new event row.
func (s *Store) CreateEvent(ctx context.Context, event models.Event) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO events (id, title, description, event_date, event_type, participants, prizes, status, image, max_registrations, current_registrations, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		event.ID, event.Title, event.Description, event.Date, event.Type, event.Participants,
		event.Prizes, event.Status, event.Image, event.MaxRegistrations,
		event.CurrentRegistrations, event.CreatedBy, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// FindEventByID fetches an event by id.
func (s *Store) FindEventByID(ctx context.Context, id string) (models.Event, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	return scanEvent(row)
}

// UpdateEvent overwrites every mutable field of the event row.
func (s *Store) UpdateEvent(ctx context.Context, event models.Event) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE events SET title = $2, description = $3, event_date = $4, event_type = $5,
		 participants = $6, prizes = $7, status = $8, image = $9, max_registrations = $10, updated_at = $11
		 WHERE id = $1`,
		event.ID, event.Title, event.Description, event.Date, event.Type, event.Participants,
		event.Prizes, event.Status, event.Image, event.MaxRegistrations, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteEvent removes an event row.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListEvents returns events matching the filter, newest first.
func (s *Store) ListEvents(ctx context.Context, filter storage.EventFilter) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	args = append(args, normalizeLimit(filter.Limit), filter.Skip)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, event)
	}
	return out, rows.Err()
}

// IncrementRegistrations bumps the registration counter by one.
func (s *Store) IncrementRegistrations(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE events SET current_registrations = current_registrations + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment registrations: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (models.Event, error) {
	var event models.Event
	err := row.Scan(&event.ID, &event.Title, &event.Description, &event.Date, &event.Type,
		&event.Participants, &event.Prizes, &event.Status, &event.Image,
		&event.MaxRegistrations, &event.CurrentRegistrations, &event.CreatedBy,
		&event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Event{}, storage.ErrNotFound
		}
		return models.Event{}, fmt.Errorf("scan event: %w", err)
	}
	return event, nil
}
