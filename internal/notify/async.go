package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/pkordes/site-visits/internal/domain"
)

// Async hands each notification to a background goroutine that retries with
// exponential backoff, so a slow or failing inbox never delays the caller.
// Wait blocks until in-flight deliveries finish; call it on shutdown.
type Async struct {
	next    Notifier
	log     *slog.Logger
	timeout time.Duration
	retries uint64
	base    time.Duration
	wg      sync.WaitGroup
}

// AsyncOption configures an Async.
type AsyncOption func(*Async)

// WithTimeout bounds one delivery, retries included.
func WithTimeout(d time.Duration) AsyncOption {
	return func(a *Async) { a.timeout = d }
}

// WithRetries sets how many times a failed delivery is retried and the
// initial backoff between attempts.
func WithRetries(n uint64, base time.Duration) AsyncOption {
	return func(a *Async) {
		a.retries = n
		a.base = base
	}
}

// NewAsync wraps next. Defaults: 5s timeout, 3 retries from 100ms.
func NewAsync(next Notifier, log *slog.Logger, opts ...AsyncOption) *Async {
	a := &Async{
		next:    next,
		log:     log,
		timeout: 5 * time.Second,
		retries: 3,
		base:    100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Notify implements Notifier. It always returns nil; delivery errors are
// logged once retries are exhausted.
func (a *Async) Notify(ctx context.Context, n domain.Notification) error {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		// The request that triggered the notification may finish first.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()

		backoff := retry.WithMaxRetries(a.retries, retry.NewExponential(a.base))
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			if err := a.next.Notify(ctx, n); err != nil {
				return retry.RetryableError(err)
			}
			return nil
		})
		if err != nil {
			a.log.ErrorContext(ctx, "notification delivery failed",
				"notification_id", n.ID,
				"recipient_id", n.RecipientID,
				"related_entity_id", n.RelatedEntityID,
				"error", err,
			)
		}
	}()
	return nil
}

// Wait blocks until every delivery started so far has finished or ctx is done.
func (a *Async) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
