package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rsinnovation/hub-api/internal/models"
	"github.com/rsinnovation/hub-api/internal/storage"
)

const userColumns = `id, name, email, role, phone, profile_picture, google_id, password_hash, is_active, created_at, updated_at`

// CreateUser inserts a new user row. A duplicate email maps to
// storage.ErrAlreadyExists.
func (s *Store) CreateUser(ctx context.Context, user models.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, role, phone, profile_picture, google_id, password_hash, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		user.ID, user.Name, user.Email, user.Role, user.Phone, user.ProfilePicture,
		user.GoogleID, user.PasswordHash, user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindUserByID fetches a user by id.
func (s *Store) FindUserByID(ctx context.Context, id string) (models.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// FindUserByEmail fetches a user by email address.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// UpdateUser overwrites every mutable field of the user row.
func (s *Store) UpdateUser(ctx context.Context, user models.User) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET name = $2, email = $3, role = $4, phone = $5, profile_picture = $6,
		 google_id = $7, password_hash = $8, is_active = $9, updated_at = $10
		 WHERE id = $1`,
		user.ID, user.Name, user.Email, user.Role, user.Phone, user.ProfilePicture,
		user.GoogleID, user.PasswordHash, user.IsActive, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteUser removes a user row.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListUsers returns users matching the filter, newest first.
func (s *Store) ListUsers(ctx context.Context, filter storage.UserFilter) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE 1=1`
	args := []any{}

	if filter.Role != "" {
		args = append(args, filter.Role)
		query += fmt.Sprintf(" AND role = $%d", len(args))
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
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	return out, rows.Err()
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.Phone,
		&user.ProfilePicture, &user.GoogleID, &user.PasswordHash, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, fmt.Errorf("scan user: %w", err)
	}
	return user, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 1000 {
		return 100
	}
	return limit
}
