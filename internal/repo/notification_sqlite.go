package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/site-visits/internal/domain"
)

type sqliteNotificationRepo struct {
	db sqlDB
}

// NewSQLiteNotificationRepo constructs a NotificationRepo backed by SQLite.
func NewSQLiteNotificationRepo(db sqlDB) NotificationRepo {
	return &sqliteNotificationRepo{db: db}
}

func (r *sqliteNotificationRepo) Create(ctx context.Context, n domain.Notification) error {
	const q = `
		INSERT INTO notifications (
			id, recipient_id, title, message, category,
			related_entity_type, related_entity_id, is_read, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, q,
		n.ID.String(), n.RecipientID.String(), n.Title, n.Message, string(n.Category),
		n.RelatedEntityType, n.RelatedEntityID.String(), n.Read, sqliteTime(n.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("repo.SQLiteNotificationRepo.Create: %w", err)
	}
	return nil
}

func (r *sqliteNotificationRepo) ListByRecipient(ctx context.Context, recipient domain.ProfileID, unreadOnly bool, p domain.PaginationParams) ([]domain.Notification, int64, error) {
	where := ` WHERE recipient_id = ?`
	if unreadOnly {
		where += ` AND is_read = 0`
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM notifications`+where, recipient.String()).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.SQLiteNotificationRepo.ListByRecipient: count: %w", err)
	}

	q := `
		SELECT id, recipient_id, title, message, category,
		       related_entity_type, related_entity_id, is_read, created_at
		FROM notifications` + where + `
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, recipient.String(), p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("repo.SQLiteNotificationRepo.ListByRecipient: %w", err)
	}
	defer rows.Close()

	out := []domain.Notification{}
	for rows.Next() {
		var (
			n                      domain.Notification
			id, rcpt, related, cat string
			createdAt              string
		)
		if err := rows.Scan(&id, &rcpt, &n.Title, &n.Message, &cat,
			&n.RelatedEntityType, &related, &n.Read, &createdAt); err != nil {
			return nil, 0, fmt.Errorf("repo.SQLiteNotificationRepo.ListByRecipient: scan: %w", err)
		}
		if n.ID, err = uuid.Parse(id); err != nil {
			return nil, 0, fmt.Errorf("repo.SQLiteNotificationRepo.ListByRecipient: id: %w", err)
		}
		if n.RecipientID, err = domain.ParseProfileID(rcpt); err != nil {
			return nil, 0, fmt.Errorf("repo.SQLiteNotificationRepo.ListByRecipient: recipient_id: %w", err)
		}
		if n.RelatedEntityID, err = uuid.Parse(related); err != nil {
			return nil, 0, fmt.Errorf("repo.SQLiteNotificationRepo.ListByRecipient: related_entity_id: %w", err)
		}
		if n.CreatedAt, err = parseSQLiteTime(createdAt); err != nil {
			return nil, 0, fmt.Errorf("repo.SQLiteNotificationRepo.ListByRecipient: created_at: %w", err)
		}
		n.Category = domain.Category(cat)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.SQLiteNotificationRepo.ListByRecipient: rows: %w", err)
	}
	return out, total, nil
}

func (r *sqliteNotificationRepo) MarkRead(ctx context.Context, id uuid.UUID, recipient domain.ProfileID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = 1 WHERE id = ? AND recipient_id = ?`,
		id.String(), recipient.String())
	if err != nil {
		return fmt.Errorf("repo.SQLiteNotificationRepo.MarkRead: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repo.SQLiteNotificationRepo.MarkRead: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("repo.SQLiteNotificationRepo.MarkRead: %w", domain.ErrNotFound)
	}
	return nil
}
