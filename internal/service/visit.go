// Package service contains the business logic for the site-visit dispatch API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pkordes/site-visits/internal/clarification"
	"github.com/pkordes/site-visits/internal/domain"
	"github.com/pkordes/site-visits/internal/notify"
	"github.com/pkordes/site-visits/internal/policy"
	"github.com/pkordes/site-visits/internal/repo"
)

// maxWriteAttempts bounds the read-evaluate-write cycle when a concurrent
// writer keeps moving the visit's version without changing its status.
const maxWriteAttempts = 3

// VisitService owns the site-visit lifecycle: creation, edits, deletion and
// every status transition. Each mutation is one optimistic read-modify-write
// against a single visit; notifications go out only after the write commits.
type VisitService struct {
	visits   repo.VisitRepo
	profiles repo.ProfileRepo
	notifier notify.Notifier
	log      *slog.Logger
	now      func() time.Time
}

// Option configures a VisitService.
type Option func(*VisitService)

// WithClock replaces time.Now, for tests that assert on timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *VisitService) { s.now = now }
}

// NewVisitService constructs a VisitService.
func NewVisitService(visits repo.VisitRepo, profiles repo.ProfileRepo, notifier notify.Notifier, log *slog.Logger, opts ...Option) *VisitService {
	s := &VisitService{
		visits:   visits,
		profiles: profiles,
		notifier: notifier,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// VisitInput carries the requester-authored fields of a new visit.
type VisitInput struct {
	CustomerName   string
	CustomerPhone  string
	PickupLocation string
	ProjectIDs     []string
	VisitDate      time.Time
	VisitTime      string // "15:04"
	Visibility     domain.Visibility
	Notes          string
}

// VisitPatch carries an edit. Nil fields are left unchanged.
type VisitPatch struct {
	CustomerName   *string
	CustomerPhone  *string
	PickupLocation *string
	ProjectIDs     *[]string
	VisitDate      *time.Time
	VisitTime      *string
	Notes          *string
}

// Create validates and persists a new pending visit owned by requesterID.
func (s *VisitService) Create(ctx context.Context, requesterID domain.ProfileID, in VisitInput) (domain.Visit, error) {
	actor, err := s.actor(ctx, requesterID, domain.OpCreate)
	if err != nil {
		return domain.Visit{}, fmt.Errorf("service.VisitService.Create: %w", err)
	}

	now := s.now()
	v := domain.Visit{
		ID:             domain.NewVisitID(),
		RequesterID:    actor.ID,
		CustomerName:   strings.TrimSpace(in.CustomerName),
		CustomerPhone:  strings.TrimSpace(in.CustomerPhone),
		PickupLocation: strings.TrimSpace(in.PickupLocation),
		ProjectIDs:     cleanProjects(in.ProjectIDs),
		VisitDate:      in.VisitDate,
		VisitTime:      strings.TrimSpace(in.VisitTime),
		Visibility:     in.Visibility,
		Status:         domain.StatusPending,
		Notes:          strings.TrimSpace(in.Notes),
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if v.Visibility == "" {
		v.Visibility = domain.VisibilityPrivate
	}
	if err := validateVisit(v); err != nil {
		return domain.Visit{}, fmt.Errorf("service.VisitService.Create: %w", err)
	}
	if err := clarification.ValidateNotes(v.Notes); err != nil {
		return domain.Visit{}, fmt.Errorf("service.VisitService.Create: %w", err)
	}

	created, err := s.visits.Create(ctx, v)
	if err != nil {
		return domain.Visit{}, fmt.Errorf("service.VisitService.Create: %w", storeErr("create visit", err))
	}
	return created, nil
}

// GetByID returns a single visit.
func (s *VisitService) GetByID(ctx context.Context, id domain.VisitID) (domain.Visit, error) {
	v, err := s.visits.GetByID(ctx, id)
	if err != nil {
		return domain.Visit{}, fmt.Errorf("service.VisitService.GetByID: %w", loadErr(id, err))
	}
	return v, nil
}

// List returns one page of visits matching f and the total match count.
// No match is an empty slice, not an error.
func (s *VisitService) List(ctx context.Context, f domain.VisitFilter, p domain.PaginationParams) ([]domain.Visit, int64, error) {
	visits, total, err := s.visits.List(ctx, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.VisitService.List: %w", storeErr("list visits", err))
	}
	if visits == nil {
		visits = []domain.Visit{}
	}
	return visits, total, nil
}

// ActiveDrivers lists the profiles an approver may assign to a visit.
func (s *VisitService) ActiveDrivers(ctx context.Context) ([]domain.Profile, error) {
	drivers, err := s.profiles.ListActiveByRole(ctx, domain.RoleDriver)
	if err != nil {
		return nil, fmt.Errorf("service.VisitService.ActiveDrivers: %w", storeErr("list drivers", err))
	}
	if drivers == nil {
		drivers = []domain.Profile{}
	}
	return drivers, nil
}

// Edit applies a patch to a pending visit on behalf of its requester.
// Once a clarification response has been appended to the notes, an edit may
// only append to them; the existing trail must be kept verbatim.
func (s *VisitService) Edit(ctx context.Context, id domain.VisitID, actorID domain.ProfileID, p VisitPatch) (domain.Visit, error) {
	actor, err := s.actor(ctx, actorID, domain.OpEdit)
	if err != nil {
		return domain.Visit{}, fmt.Errorf("service.VisitService.Edit: %w", err)
	}

	_, saved, err := s.mutate(ctx, id, actor, domain.OpEdit, func(v *domain.Visit, _ time.Time) error {
		applyPatch(v, p)
		if err := validateVisit(*v); err != nil {
			return err
		}
		if p.Notes != nil {
			return setNotes(v, strings.TrimSpace(*p.Notes))
		}
		return nil
	})
	if err != nil {
		return domain.Visit{}, fmt.Errorf("service.VisitService.Edit: %w", err)
	}
	return saved, nil
}

// setNotes validates replacement notes against the stored trail and stores
// them on v. v.Notes still holds the stored value on entry.
func setNotes(v *domain.Visit, notes string) error {
	authored := notes
	if v.ClarificationResponses > 0 {
		if !strings.HasPrefix(notes, v.Notes) {
			return domain.NewValidationError("notes", "must keep the clarification trail unchanged")
		}
		authored = notes[len(v.Notes):]
	}
	if err := clarification.ValidateNotes(authored); err != nil {
		return err
	}
	v.Notes = notes
	return nil
}

// Delete removes a pending visit on behalf of its requester.
func (s *VisitService) Delete(ctx context.Context, id domain.VisitID, actorID domain.ProfileID) error {
	actor, err := s.actor(ctx, actorID, domain.OpDelete)
	if err != nil {
		return fmt.Errorf("service.VisitService.Delete: %w", err)
	}

	for attempt := 1; ; attempt++ {
		current, err := s.visits.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("service.VisitService.Delete: %w", loadErr(id, err))
		}
		if err := evaluate(actor, current, domain.OpDelete).Err(); err != nil {
			return fmt.Errorf("service.VisitService.Delete: %w", err)
		}

		err = s.visits.Delete(ctx, id, current.Version)
		switch {
		case err == nil:
			s.log.InfoContext(ctx, "site visit deleted", "visit_id", id, "actor_id", actor.ID)
			return nil
		case errors.Is(err, domain.ErrConflict) && attempt < maxWriteAttempts:
			continue
		default:
			return fmt.Errorf("service.VisitService.Delete: %w", writeErr(id, err))
		}
	}
}

// actor loads the acting profile and applies the role-only policy check, so
// a caller with the wrong role is turned away before any visit is read.
func (s *VisitService) actor(ctx context.Context, id domain.ProfileID, op domain.Operation) (domain.Profile, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Profile{}, &domain.AuthorizationError{Operation: op, Reason: "unknown profile"}
	}
	if err != nil {
		return domain.Profile{}, storeErr("load actor", err)
	}
	if !p.Active {
		return domain.Profile{}, &domain.AuthorizationError{Operation: op, Reason: "profile is inactive"}
	}
	if err := policy.CheckRole(p.Role.Actor(), op).Err(); err != nil {
		return domain.Profile{}, err
	}
	return p, nil
}

// mutate runs the optimistic read-evaluate-write cycle for op. apply receives
// a private copy of the stored visit and the write timestamp. The policy is
// re-evaluated against a fresh read on every attempt, so a concurrent status
// change surfaces as an IllegalTransitionError carrying the new status.
func (s *VisitService) mutate(ctx context.Context, id domain.VisitID, actor domain.Profile, op domain.Operation, apply func(v *domain.Visit, now time.Time) error) (before, after domain.Visit, err error) {
	for attempt := 1; ; attempt++ {
		current, err := s.visits.GetByID(ctx, id)
		if err != nil {
			return domain.Visit{}, domain.Visit{}, loadErr(id, err)
		}
		if err := evaluate(actor, current, op).Err(); err != nil {
			return domain.Visit{}, domain.Visit{}, err
		}

		now := s.now()
		next := current.Clone()
		if err := apply(&next, now); err != nil {
			return domain.Visit{}, domain.Visit{}, err
		}
		if to, ok := policy.Target(op); ok {
			next.Status = to
		}
		next.UpdatedAt = now
		if err := next.CheckInvariants(); err != nil {
			return domain.Visit{}, domain.Visit{}, fmt.Errorf("%s would leave visit %s inconsistent: %w", op, id, err)
		}

		saved, err := s.visits.Update(ctx, next)
		if err == nil {
			return current, saved, nil
		}
		if errors.Is(err, domain.ErrConflict) && attempt < maxWriteAttempts {
			s.log.DebugContext(ctx, "site visit write conflict, retrying",
				"visit_id", id, "operation", op, "attempt", attempt)
			continue
		}
		return domain.Visit{}, domain.Visit{}, writeErr(id, err)
	}
}

func evaluate(actor domain.Profile, v domain.Visit, op domain.Operation) policy.Decision {
	return policy.Evaluate(policy.Request{
		Role:             actor.Role.Actor(),
		Status:           v.Status,
		Operation:        op,
		IsOwner:          v.IsOwnedBy(actor.ID),
		IsAssignedDriver: v.IsAssignedTo(actor.ID),
	})
}

// validateVisit checks the requester-authored fields.
func validateVisit(v domain.Visit) error {
	switch {
	case v.CustomerName == "":
		return domain.NewValidationError("customer_name", "is required")
	case v.CustomerPhone == "":
		return domain.NewValidationError("customer_phone", "is required")
	case len(v.ProjectIDs) == 0:
		return domain.NewValidationError("project_ids", "must name at least one project")
	case v.VisitDate.IsZero():
		return domain.NewValidationError("visit_date", "is required")
	}
	if _, err := time.Parse("15:04", v.VisitTime); err != nil {
		return domain.NewValidationError("visit_time", "must be HH:MM")
	}
	if _, err := domain.ParseVisibility(string(v.Visibility)); err != nil {
		return domain.NewValidationError("visibility", "must be public or private")
	}
	return nil
}

// applyPatch copies the set fields of p onto v. Notes are handled by the caller.
func applyPatch(v *domain.Visit, p VisitPatch) {
	if p.CustomerName != nil {
		v.CustomerName = strings.TrimSpace(*p.CustomerName)
	}
	if p.CustomerPhone != nil {
		v.CustomerPhone = strings.TrimSpace(*p.CustomerPhone)
	}
	if p.PickupLocation != nil {
		v.PickupLocation = strings.TrimSpace(*p.PickupLocation)
	}
	if p.ProjectIDs != nil {
		v.ProjectIDs = cleanProjects(*p.ProjectIDs)
	}
	if p.VisitDate != nil {
		v.VisitDate = *p.VisitDate
	}
	if p.VisitTime != nil {
		v.VisitTime = strings.TrimSpace(*p.VisitTime)
	}
}

// cleanProjects trims each reference and drops blanks.
func cleanProjects(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// loadErr classifies a failed visit read.
func loadErr(id domain.VisitID, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.NotFoundError{Entity: "site visit", ID: id.String()}
	}
	return storeErr("load visit", err)
}

// writeErr classifies a failed versioned write. A conflict that survives the
// retry budget is returned as-is.
func writeErr(id domain.VisitID, err error) error {
	switch {
	case errors.Is(err, domain.ErrConflict):
		return err
	case errors.Is(err, domain.ErrNotFound):
		return &domain.NotFoundError{Entity: "site visit", ID: id.String()}
	}
	return storeErr("write visit", err)
}

func storeErr(op string, err error) error {
	return &domain.InfrastructureError{Op: op, Err: err}
}
