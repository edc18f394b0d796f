package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rsinnovation/hub-api/internal/models"
	"github.com/rsinnovation/hub-api/internal/storage"
)

const applicationColumns = `id, user_id, program_id, event_id, app_type, form_data, status, review_notes, reviewed_by, reviewed_at, created_at, updated_at`

// CreateApplication inserts a new application row.
func (s *Store) CreateApplication(ctx context.Context, app models.Application) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO applications (id, user_id, program_id, event_id, app_type, form_data, status, review_notes, reviewed_by, reviewed_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		app.ID, app.UserID, app.ProgramID, app.EventID, app.Type, app.FormData,
		app.Status, app.ReviewNotes, app.ReviewedBy, app.ReviewedAt, app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

// FindApplicationByID fetches an application by id.
func (s *Store) FindApplicationByID(ctx context.Context, id string) (models.Application, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

// UpdateApplication overwrites the review fields of the application row.
func (s *Store) UpdateApplication(ctx context.Context, app models.Application) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE applications SET status = $2, review_notes = $3, reviewed_by = $4, reviewed_at = $5, updated_at = $6
		 WHERE id = $1`,
		app.ID, app.Status, app.ReviewNotes, app.ReviewedBy, app.ReviewedAt, app.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteApplication removes an application row.
func (s *Store) DeleteApplication(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListApplications returns applications matching the filter, newest first.
func (s *Store) ListApplications(ctx context.Context, filter storage.ApplicationFilter) ([]models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE 1=1`
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND app_type = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	args = append(args, normalizeLimit(filter.Limit), filter.Skip)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

// ListApplicationsByUser returns every application the user has submitted.
func (s *Store) ListApplicationsByUser(ctx context.Context, userID string) ([]models.Application, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list applications by user: %w", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

// UserHasApplied reports whether the user already has an application against
// the given program or event.
func (s *Store) UserHasApplied(ctx context.Context, userID, programID, eventID string) (bool, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications
		 WHERE user_id = $1 AND (($2 <> '' AND program_id = $2) OR ($3 <> '' AND event_id = $3))`,
		userID, programID, eventID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count applications: %w", err)
	}
	return count > 0, nil
}

func collectApplications(rows pgx.Rows) ([]models.Application, error) {
	var out []models.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

func scanApplication(row pgx.Row) (models.Application, error) {
	var app models.Application
	err := row.Scan(&app.ID, &app.UserID, &app.ProgramID, &app.EventID, &app.Type,
		&app.FormData, &app.Status, &app.ReviewNotes, &app.ReviewedBy, &app.ReviewedAt,
		&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Application{}, storage.ErrNotFound
		}
		return models.Application{}, fmt.Errorf("scan application: %w", err)
	}
	return app, nil
}
