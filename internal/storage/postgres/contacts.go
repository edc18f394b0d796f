package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rsinnovation/hub-api/internal/models"
	"github.com/rsinnovation/hub-api/internal/storage"
)

const contactColumns = `id, name, email, phone, subject, message, status, reply_message, replied_by, replied_at, created_at, updated_at`

// CreateContact inserts a new contact row.
func (s *Store) CreateContact(ctx context.Context, contact models.Contact) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO contacts (id, name, email, phone, subject, message, status, reply_message, replied_by, replied_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		contact.ID, contact.Name, contact.Email, contact.Phone, contact.Subject, contact.Message,
		contact.Status, contact.ReplyMessage, contact.RepliedBy, contact.RepliedAt,
		contact.CreatedAt, contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// FindContactByID fetches a contact by id.
func (s *Store) FindContactByID(ctx context.Context, id string) (models.Contact, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)
	return scanContact(row)
}

// UpdateContact overwrites the handling fields of the contact row.
func (s *Store) UpdateContact(ctx context.Context, contact models.Contact) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE contacts SET status = $2, reply_message = $3, replied_by = $4, replied_at = $5, updated_at = $6
		 WHERE id = $1`,
		contact.ID, contact.Status, contact.ReplyMessage, contact.RepliedBy,
		contact.RepliedAt, contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteContact removes a contact row.
func (s *Store) DeleteContact(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListContacts returns contacts matching the filter, newest first.
func (s *Store) ListContacts(ctx context.Context, filter storage.ContactFilter) ([]models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE 1=1`
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
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var out []models.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, contact)
	}
	return out, rows.Err()
}

func scanContact(row pgx.Row) (models.Contact, error) {
	var contact models.Contact
	err := row.Scan(&contact.ID, &contact.Name, &contact.Email, &contact.Phone, &contact.Subject,
		&contact.Message, &contact.Status, &contact.ReplyMessage, &contact.RepliedBy,
		&contact.RepliedAt, &contact.CreatedAt, &contact.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Contact{}, storage.ErrNotFound
		}
		return models.Contact{}, fmt.Errorf("scan contact: %w", err)
	}
	return contact, nil
}
