package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/site-visits/internal/domain"
)

// NotificationRepo persists the per-profile notification inbox.
type NotificationRepo interface {
	// Create stores n. Inserting an id that already exists is a no-op, so a
	// retried delivery never produces a duplicate.
	Create(ctx context.Context, n domain.Notification) error

	// ListByRecipient returns one page of the recipient's notifications,
	// newest first, and the total number of matches.
	ListByRecipient(ctx context.Context, recipient domain.ProfileID, unreadOnly bool, p domain.PaginationParams) ([]domain.Notification, int64, error)

	// MarkRead flags the notification as read.
	// Returns domain.ErrNotFound if it does not exist or belongs to someone else.
	MarkRead(ctx context.Context, id uuid.UUID, recipient domain.ProfileID) error
}

type pgNotificationRepo struct {
	db db
}

// NewNotificationRepo constructs a NotificationRepo backed by the provided db connection.
func NewNotificationRepo(db db) NotificationRepo {
	return &pgNotificationRepo{db: db}
}

func (r *pgNotificationRepo) Create(ctx context.Context, n domain.Notification) error {
	const q = `
		INSERT INTO notifications (
			id, recipient_id, title, message, category,
			related_entity_type, related_entity_id, is_read, created_at
		) VALUES (
			@id, @recipient_id, @title, @message, @category,
			@related_entity_type, @related_entity_id, @is_read, @created_at
		)
		ON CONFLICT (id) DO NOTHING`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"id":                  n.ID,
		"recipient_id":        n.RecipientID.UUID(),
		"title":               n.Title,
		"message":             n.Message,
		"category":            string(n.Category),
		"related_entity_type": n.RelatedEntityType,
		"related_entity_id":   n.RelatedEntityID,
		"is_read":             n.Read,
		"created_at":          n.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("repo.NotificationRepo.Create: %w", err)
	}
	return nil
}

func (r *pgNotificationRepo) ListByRecipient(ctx context.Context, recipient domain.ProfileID, unreadOnly bool, p domain.PaginationParams) ([]domain.Notification, int64, error) {
	const where = `WHERE recipient_id = @recipient_id AND (NOT @unread_only OR NOT is_read)`

	args := pgx.NamedArgs{"recipient_id": recipient.UUID(), "unread_only": unreadOnly}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM notifications `+where, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.NotificationRepo.ListByRecipient: count: %w", err)
	}

	args["limit"] = p.Limit
	args["offset"] = p.Offset()
	q := `
		SELECT id, recipient_id, title, message, category,
		       related_entity_type, related_entity_id, is_read, created_at
		FROM notifications ` + where + `
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.NotificationRepo.ListByRecipient: %w", err)
	}
	defer rows.Close()

	out := []domain.Notification{}
	for rows.Next() {
		var (
			n                  domain.Notification
			id, rcpt, relateID pgtype.UUID
			category           string
		)
		if err := rows.Scan(&id, &rcpt, &n.Title, &n.Message, &category,
			&n.RelatedEntityType, &relateID, &n.Read, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("repo.NotificationRepo.ListByRecipient: scan: %w", err)
		}
		n.ID = uuid.UUID(id.Bytes)
		n.RecipientID = domain.ProfileID(rcpt.Bytes)
		n.RelatedEntityID = uuid.UUID(relateID.Bytes)
		n.Category = domain.Category(category)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.NotificationRepo.ListByRecipient: rows: %w", err)
	}
	return out, total, nil
}

func (r *pgNotificationRepo) MarkRead(ctx context.Context, id uuid.UUID, recipient domain.ProfileID) error {
	const q = `UPDATE notifications SET is_read = true WHERE id = @id AND recipient_id = @recipient_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "recipient_id": recipient.UUID()})
	if err != nil {
		return fmt.Errorf("repo.NotificationRepo.MarkRead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.NotificationRepo.MarkRead: %w", domain.ErrNotFound)
	}
	return nil
}
