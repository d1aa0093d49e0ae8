// Package notify delivers workflow notifications. Every notification is
// written to the recipient's inbox first and then pushed to live subscribers.
// Delivery is never part of the visit write: callers log failures and move on.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/site-visits/internal/domain"
)

// Notifier sends one notification to its recipient.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// Store persists notifications. repo.NotificationRepo satisfies it.
type Store interface {
	Create(ctx context.Context, n domain.Notification) error
}

// Publisher pushes a stored notification to whoever is listening for the
// recipient right now.
type Publisher interface {
	Publish(ctx context.Context, n domain.Notification) error
}

// Dispatcher persists then publishes. The inbox write is the delivery;
// publishing is best-effort.
type Dispatcher struct {
	store Store
	pub   Publisher
	log   *slog.Logger
}

// NewDispatcher returns a Dispatcher. pub may be nil when no live channel is
// configured.
func NewDispatcher(store Store, pub Publisher, log *slog.Logger) *Dispatcher {
	return &Dispatcher{store: store, pub: pub, log: log}
}

// Notify implements Notifier.
func (d *Dispatcher) Notify(ctx context.Context, n domain.Notification) error {
	if err := d.store.Create(ctx, n); err != nil {
		return fmt.Errorf("notify.Dispatcher.Notify: %w", err)
	}
	if d.pub == nil {
		return nil
	}
	if err := d.pub.Publish(ctx, n); err != nil {
		d.log.WarnContext(ctx, "notification publish failed",
			"notification_id", n.ID,
			"recipient_id", n.RecipientID,
			"error", err,
		)
	}
	return nil
}
