package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rsinnovation/hub-api/internal/models"
	"github.com/rsinnovation/hub-api/internal/storage"
)

const programColumns = `id, title, description, features, duration, category, image, is_active, max_participants, current_participants, created_by, created_at, updated_at`

// CreateProgram inserts a new program row.
func (s *Store) CreateProgram(ctx context.Context, program models.Program) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO programs (id, title, description, features, duration, category, image, is_active, max_participants, current_participants, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		program.ID, program.Title, program.Description, program.Features, program.Duration,
		program.Category, program.Image, program.IsActive, program.MaxParticipants,
		program.CurrentParticipants, program.CreatedBy, program.CreatedAt, program.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert program: %w", err)
	}
	return nil
}

// FindProgramByID fetches a program by id.
func (s *Store) FindProgramByID(ctx context.Context, id string) (models.Program, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+programColumns+` FROM programs WHERE id = $1`, id)
	return scanProgram(row)
}

// UpdateProgram overwrites every mutable field of the program row.
func (s *Store) UpdateProgram(ctx context.Context, program models.Program) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE programs SET title = $2, description = $3, features = $4, duration = $5,
		 category = $6, image = $7, is_active = $8, max_participants = $9, updated_at = $10
		 WHERE id = $1`,
		program.ID, program.Title, program.Description, program.Features, program.Duration,
		program.Category, program.Image, program.IsActive, program.MaxParticipants, program.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListPrograms returns programs matching the filter, newest first.
func (s *Store) ListPrograms(ctx context.Context, filter storage.ProgramFilter) ([]models.Program, error) {
	query := `SELECT ` + programColumns + ` FROM programs WHERE 1=1`
	args := []any{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		query += fmt.Sprintf(" AND is_active = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	args = append(args, normalizeLimit(filter.Limit), filter.Skip)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	defer rows.Close()

	var out []models.Program
	for rows.Next() {
		program, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, program)
	}
	return out, rows.Err()
}

// IncrementParticipants bumps the participant counter by one.
func (s *Store) IncrementParticipants(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE programs SET current_participants = current_participants + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment participants: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanProgram(row pgx.Row) (models.Program, error) {
	var program models.Program
	err := row.Scan(&program.ID, &program.Title, &program.Description, &program.Features,
		&program.Duration, &program.Category, &program.Image, &program.IsActive,
		&program.MaxParticipants, &program.CurrentParticipants, &program.CreatedBy,
		&program.CreatedAt, &program.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Program{}, storage.ErrNotFound
		}
		return models.Program{}, fmt.Errorf("scan program: %w", err)
	}
	return program, nil
}
