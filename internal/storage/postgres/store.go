// Package postgres provides pgx-backed persistence for the API.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rsinnovation/hub-api/internal/storage"
)

// Ensure Store satisfies the full storage surface at compile time.
var _ storage.Store = (*Store)(nil)

// Store provides Postgres-backed persistence for all entities.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to the database and applies migrations.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			role TEXT NOT NULL DEFAULT 'USER',
			phone TEXT NOT NULL DEFAULT '',
			profile_picture TEXT NOT NULL DEFAULT '',
			google_id TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS programs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			features TEXT[] NOT NULL DEFAULT '{}',
			duration TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL,
			image TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			max_participants INT NOT NULL DEFAULT 0,
			current_participants INT NOT NULL DEFAULT 0,
			created_by TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			event_date TEXT NOT NULL DEFAULT '',
			event_type TEXT NOT NULL DEFAULT '',
			participants TEXT NOT NULL DEFAULT '',
			prizes TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'upcoming',
			image TEXT NOT NULL DEFAULT '',
			max_registrations INT NOT NULL DEFAULT 0,
			current_registrations INT NOT NULL DEFAULT 0,
			created_by TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS applications (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			program_id TEXT NOT NULL DEFAULT '',
			event_id TEXT NOT NULL DEFAULT '',
			app_type TEXT NOT NULL,
			form_data JSONB NOT NULL DEFAULT '{}',
			status TEXT NOT NULL DEFAULT 'PENDING',
			review_notes TEXT NOT NULL DEFAULT '',
			reviewed_by TEXT NOT NULL DEFAULT '',
			reviewed_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS applications_user_idx ON applications (user_id);`,
		`CREATE TABLE IF NOT EXISTS contacts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			subject TEXT NOT NULL,
			message TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'UNREAD',
			reply_message TEXT NOT NULL DEFAULT '',
			replied_by TEXT NOT NULL DEFAULT '',
			replied_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS success_stories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			company TEXT NOT NULL,
			story TEXT NOT NULL,
			achievement TEXT NOT NULL,
			image TEXT NOT NULL DEFAULT '',
			is_published BOOLEAN NOT NULL DEFAULT FALSE,
			created_by TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}
