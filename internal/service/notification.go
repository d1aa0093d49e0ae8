package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/site-visits/internal/domain"
	"github.com/pkordes/site-visits/internal/repo"
)

// NotificationService serves a profile's notification inbox.
type NotificationService struct {
	repo repo.NotificationRepo
}

// NewNotificationService constructs a NotificationService backed by the provided repo.
func NewNotificationService(r repo.NotificationRepo) *NotificationService {
	return &NotificationService{repo: r}
}

// List returns one page of the recipient's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, recipient domain.ProfileID, unreadOnly bool, p domain.PaginationParams) ([]domain.Notification, int64, error) {
	ns, total, err := s.repo.ListByRecipient(ctx, recipient, unreadOnly, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.NotificationService.List: %w", storeErr("list notifications", err))
	}
	if ns == nil {
		ns = []domain.Notification{}
	}
	return ns, total, nil
}

// MarkRead flags one of the recipient's notifications as read. Someone
// else's notification is reported as not found.
func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID, recipient domain.ProfileID) error {
	err := s.repo.MarkRead(ctx, id, recipient)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("service.NotificationService.MarkRead: %w",
			&domain.NotFoundError{Entity: "notification", ID: id.String()})
	}
	return fmt.Errorf("service.NotificationService.MarkRead: %w", storeErr("mark notification read", err))
}
