package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rsinnovation/hub-api/internal/models"
	"github.com/rsinnovation/hub-api/internal/storage"
)

const storyColumns = `id, name, company, story, achievement, image, is_published, created_by, created_at, updated_at`

// CreateStory inserts a new success story row.
func (s *Store) CreateStory(ctx context.Context, story models.SuccessStory) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO success_stories (id, name, company, story, achievement, image, is_published, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		story.ID, story.Name, story.Company, story.Story, story.Achievement, story.Image,
		story.IsPublished, story.CreatedBy, story.CreatedAt, story.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert story: %w", err)
	}
	return nil
}

// FindStoryByID fetches a success story by id.
func (s *Store) FindStoryByID(ctx context.Context, id string) (models.SuccessStory, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+storyColumns+` FROM success_stories WHERE id = $1`, id)
	return scanStory(row)
}

// UpdateStory overwrites every mutable field of the story row.
func (s *Store) UpdateStory(ctx context.Context, story models.SuccessStory) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE success_stories SET name = $2, company = $3, story = $4, achievement = $5,
		 image = $6, is_published = $7, updated_at = $8
		 WHERE id = $1`,
		story.ID, story.Name, story.Company, story.Story, story.Achievement,
		story.Image, story.IsPublished, story.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update story: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteStory removes a success story row.
func (s *Store) DeleteStory(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM success_stories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete story: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListStories returns success stories matching the filter, newest first.
func (s *Store) ListStories(ctx context.Context, filter storage.StoryFilter) ([]models.SuccessStory, error) {
	query := `SELECT ` + storyColumns + ` FROM success_stories WHERE 1=1`
	args := []any{}

	if filter.IsPublished != nil {
		args = append(args, *filter.IsPublished)
		query += fmt.Sprintf(" AND is_published = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	args = append(args, normalizeLimit(filter.Limit), filter.Skip)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	defer rows.Close()

	var out []models.SuccessStory
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, story)
	}
	return out, rows.Err()
}

func scanStory(row pgx.Row) (models.SuccessStory, error) {
	var story models.SuccessStory
	err := row.Scan(&story.ID, &story.Name, &story.Company, &story.Story, &story.Achievement,
		&story.Image, &story.IsPublished, &story.CreatedBy, &story.CreatedAt, &story.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.SuccessStory{}, storage.ErrNotFound
		}
		return models.SuccessStory{}, fmt.Errorf("scan story: %w", err)
	}
	return story, nil
}
