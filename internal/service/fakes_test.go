package service_test

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/site-visits/internal/domain"
	"github.com/pkordes/site-visits/internal/notify"
	"github.com/pkordes/site-visits/internal/repo"
)

// memVisitRepo is an in-memory repo.VisitRepo with the same per-record
// compare-and-swap semantics as the SQL stores. It is safe for concurrent use.
type memVisitRepo struct {
	mu     sync.Mutex
	visits map[domain.VisitID]domain.Visit

	// barrier, when set, holds the first n reads until all n have happened,
	// so racing writers are guaranteed to act on the same snapshot.
	barrier *readBarrier
}

func newMemVisitRepo() *memVisitRepo {
	return &memVisitRepo{visits: map[domain.VisitID]domain.Visit{}}
}

var _ repo.VisitRepo = (*memVisitRepo)(nil)

func (m *memVisitRepo) Create(_ context.Context, v domain.Visit) (domain.Visit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visits[v.ID] = v.Clone()
	return v.Clone(), nil
}

func (m *memVisitRepo) GetByID(_ context.Context, id domain.VisitID) (domain.Visit, error) {
	m.mu.Lock()
	v, ok := m.visits[id]
	m.mu.Unlock()

	if m.barrier != nil {
		m.barrier.wait()
	}
	if !ok {
		return domain.Visit{}, domain.ErrNotFound
	}
	return v.Clone(), nil
}

func (m *memVisitRepo) List(_ context.Context, f domain.VisitFilter, p domain.PaginationParams) ([]domain.Visit, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []domain.Visit
	for _, v := range m.visits {
		if f.Status != nil && v.Status != *f.Status {
			continue
		}
		if f.RequesterID != nil && v.RequesterID != *f.RequesterID {
			continue
		}
		if f.DriverID != nil && !v.IsAssignedTo(*f.DriverID) {
			continue
		}
		if f.From != nil && v.VisitDate.Before(*f.From) {
			continue
		}
		if f.To != nil && v.VisitDate.After(*f.To) {
			continue
		}
		matched = append(matched, v.Clone())
	}
	slices.SortFunc(matched, func(a, b domain.Visit) int { return b.VisitDate.Compare(a.VisitDate) })

	total := int64(len(matched))
	start := min(p.Offset(), len(matched))
	end := min(start+p.Limit, len(matched))
	return append([]domain.Visit{}, matched[start:end]...), total, nil
}

func (m *memVisitRepo) Update(_ context.Context, v domain.Visit) (domain.Visit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.visits[v.ID]
	if !ok {
		return domain.Visit{}, domain.ErrNotFound
	}
	if stored.Version != v.Version {
		return domain.Visit{}, domain.ErrConflict
	}
	next := v.Clone()
	next.Version++
	next.CreatedAt = stored.CreatedAt
	m.visits[v.ID] = next
	return next.Clone(), nil
}

func (m *memVisitRepo) Delete(_ context.Context, id domain.VisitID, version int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.visits[id]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != version {
		return domain.ErrConflict
	}
	delete(m.visits, id)
	return nil
}

// stored returns the current record, bypassing any barrier.
func (m *memVisitRepo) stored(id domain.VisitID) (domain.Visit, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.visits[id]
	return v.Clone(), ok
}

// bump simulates an unrelated concurrent write that only moves the version.
func (m *memVisitRepo) bump(id domain.VisitID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.visits[id]
	v.Version++
	m.visits[id] = v
}

type readBarrier struct {
	mu      sync.Mutex
	n       int
	arrived int
	release chan struct{}
}

func newReadBarrier(n int) *readBarrier {
	return &readBarrier{n: n, release: make(chan struct{})}
}

func (b *readBarrier) wait() {
	b.mu.Lock()
	if b.arrived >= b.n {
		b.mu.Unlock()
		return
	}
	b.arrived++
	if b.arrived == b.n {
		close(b.release)
	}
	b.mu.Unlock()
	<-b.release
}

// memProfileRepo is a read-only in-memory user directory.
type memProfileRepo struct {
	mu       sync.RWMutex
	profiles map[domain.ProfileID]domain.Profile
}

var _ repo.ProfileRepo = (*memProfileRepo)(nil)

func newMemProfileRepo(ps ...domain.Profile) *memProfileRepo {
	m := &memProfileRepo{profiles: map[domain.ProfileID]domain.Profile{}}
	for _, p := range ps {
		m.profiles[p.ID] = p
	}
	return m
}

func (m *memProfileRepo) GetByID(_ context.Context, id domain.ProfileID) (domain.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[id]
	if !ok {
		return domain.Profile{}, domain.ErrNotFound
	}
	return p, nil
}

func (m *memProfileRepo) ListActiveByRole(_ context.Context, role domain.Role) ([]domain.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.Profile{}
	for _, p := range m.profiles {
		if p.Active && p.Role == role {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b domain.Profile) int { return strings.Compare(a.FullName, b.FullName) })
	return out, nil
}

// recordingNotifier captures notifications instead of delivering them.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
	err  error
}

var _ notify.Notifier = (*recordingNotifier)(nil)

func (r *recordingNotifier) Notify(_ context.Context, n domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return r.err
}

func (r *recordingNotifier) to(id domain.ProfileID) []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Notification
	for _, n := range r.sent {
		if n.RecipientID == id {
			out = append(out, n)
		}
	}
	return out
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

// mockVisitRepo is a hand-written test double for repo.VisitRepo.
// Each method is a function field; set only the ones your test needs.
type mockVisitRepo struct {
	create  func(ctx context.Context, v domain.Visit) (domain.Visit, error)
	getByID func(ctx context.Context, id domain.VisitID) (domain.Visit, error)
	list    func(ctx context.Context, f domain.VisitFilter, p domain.PaginationParams) ([]domain.Visit, int64, error)
	update  func(ctx context.Context, v domain.Visit) (domain.Visit, error)
	delete  func(ctx context.Context, id domain.VisitID, version int) error
}

func (m *mockVisitRepo) Create(ctx context.Context, v domain.Visit) (domain.Visit, error) {
	return m.create(ctx, v)
}
func (m *mockVisitRepo) GetByID(ctx context.Context, id domain.VisitID) (domain.Visit, error) {
	return m.getByID(ctx, id)
}
func (m *mockVisitRepo) List(ctx context.Context, f domain.VisitFilter, p domain.PaginationParams) ([]domain.Visit, int64, error) {
	return m.list(ctx, f, p)
}
func (m *mockVisitRepo) Update(ctx context.Context, v domain.Visit) (domain.Visit, error) {
	return m.update(ctx, v)
}
func (m *mockVisitRepo) Delete(ctx context.Context, id domain.VisitID, version int) error {
	return m.delete(ctx, id, version)
}

// compile-time check: mockVisitRepo must satisfy repo.VisitRepo.
var _ repo.VisitRepo = (*mockVisitRepo)(nil)

// mockNotificationRepo is a hand-written test double for repo.NotificationRepo.
type mockNotificationRepo struct {
	create          func(ctx context.Context, n domain.Notification) error
	listByRecipient func(ctx context.Context, recipient domain.ProfileID, unreadOnly bool, p domain.PaginationParams) ([]domain.Notification, int64, error)
	markRead        func(ctx context.Context, id uuid.UUID, recipient domain.ProfileID) error
}

func (m *mockNotificationRepo) Create(ctx context.Context, n domain.Notification) error {
	return m.create(ctx, n)
}
func (m *mockNotificationRepo) ListByRecipient(ctx context.Context, recipient domain.ProfileID, unreadOnly bool, p domain.PaginationParams) ([]domain.Notification, int64, error) {
	return m.listByRecipient(ctx, recipient, unreadOnly, p)
}
func (m *mockNotificationRepo) MarkRead(ctx context.Context, id uuid.UUID, recipient domain.ProfileID) error {
	return m.markRead(ctx, id, recipient)
}

var _ repo.NotificationRepo = (*mockNotificationRepo)(nil)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}
