package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rsinnovation/hub-api/internal/models"
)

// DashboardStats aggregates the admin dashboard figures in a handful of
// queries. Totals count only live content: active users and programs,
// published stories.
func (s *Store) DashboardStats(ctx context.Context, since time.Time) (models.DashboardStats, error) {
	var stats models.DashboardStats

	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users WHERE is_active),
			(SELECT COUNT(*) FROM programs WHERE is_active),
			(SELECT COUNT(*) FROM events),
			(SELECT COUNT(*) FROM applications),
			(SELECT COUNT(*) FROM contacts),
			(SELECT COUNT(*) FROM success_stories WHERE is_published),
			(SELECT COUNT(*) FROM users WHERE is_active AND created_at >= $1),
			(SELECT COUNT(*) FROM applications WHERE created_at >= $1),
			(SELECT COUNT(*) FROM contacts WHERE created_at >= $1)`,
		since,
	).Scan(
		&stats.Totals.Users, &stats.Totals.Programs, &stats.Totals.Events,
		&stats.Totals.Applications, &stats.Totals.Contacts, &stats.Totals.SuccessStories,
		&stats.RecentActivity.NewUsers, &stats.RecentActivity.NewApplications,
		&stats.RecentActivity.NewContacts,
	)
	if err != nil {
		return models.DashboardStats{}, fmt.Errorf("dashboard totals: %w", err)
	}

	stats.Breakdowns.ApplicationStatus, err = s.groupCount(ctx,
		`SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return models.DashboardStats{}, err
	}
	stats.Breakdowns.ContactStatus, err = s.groupCount(ctx,
		`SELECT status, COUNT(*) FROM contacts GROUP BY status`)
	if err != nil {
		return models.DashboardStats{}, err
	}
	stats.Breakdowns.ProgramCategories, err = s.groupCount(ctx,
		`SELECT category, COUNT(*) FROM programs WHERE is_active GROUP BY category`)
	if err != nil {
		return models.DashboardStats{}, err
	}

	if err := s.recentApplications(ctx, &stats); err != nil {
		return models.DashboardStats{}, err
	}
	if err := s.recentContacts(ctx, &stats); err != nil {
		return models.DashboardStats{}, err
	}

	return stats, nil
}

func (s *Store) groupCount(ctx context.Context, query string) (map[string]int, error) {
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dashboard breakdown: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("scan breakdown: %w", err)
		}
		out[key] = count
	}
	return out, rows.Err()
}

func (s *Store) recentApplications(ctx context.Context, stats *models.DashboardStats) error {
	rows, err := s.pool.Query(ctx,
		`SELECT id, form_data->>'name', app_type, status, created_at
		 FROM applications ORDER BY created_at DESC LIMIT 5`)
	if err != nil {
		return fmt.Errorf("recent applications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.ApplicationSummary
		if err := rows.Scan(&item.ID, &item.ApplicantName, &item.Type, &item.Status, &item.CreatedAt); err != nil {
			return fmt.Errorf("scan recent application: %w", err)
		}
		stats.RecentItems.Applications = append(stats.RecentItems.Applications, item)
	}
	return rows.Err()
}

func (s *Store) recentContacts(ctx context.Context, stats *models.DashboardStats) error {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, subject, status, created_at
		 FROM contacts ORDER BY created_at DESC LIMIT 5`)
	if err != nil {
		return fmt.Errorf("recent contacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.ContactSummary
		if err := rows.Scan(&item.ID, &item.Name, &item.Subject, &item.Status, &item.CreatedAt); err != nil {
			return fmt.Errorf("scan recent contact: %w", err)
		}
		stats.RecentItems.Contacts = append(stats.RecentItems.Contacts, item)
	}
	return rows.Err()
}
