package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pkordes/site-visits/internal/clarification"
	"github.com/pkordes/site-visits/internal/domain"
	"github.com/pkordes/site-visits/internal/telemetry"
)

// TransitionPayload carries the operation-specific input of a transition.
// Each operation reads only its own field.
type TransitionPayload struct {
	DriverID *domain.ProfileID       // approve
	Reason   string                  // decline
	Note     string                  // request_clarification
	Response string                  // submit_clarification
	Odometer *domain.OdometerReading // start_trip, complete_trip
}

// Transition applies a named status transition to a visit on behalf of
// actorID and returns the stored result. Notifications for the transition
// are dispatched after the write commits; their failure is logged only.
func (s *VisitService) Transition(ctx context.Context, id domain.VisitID, actorID domain.ProfileID, op domain.Operation, p TransitionPayload) (domain.Visit, error) {
	if !slices.Contains(domain.Transitions, op) {
		return domain.Visit{}, fmt.Errorf("service.VisitService.Transition: %w",
			domain.NewValidationError("operation", fmt.Sprintf("%q is not a transition", op)))
	}

	actor, err := s.actor(ctx, actorID, op)
	if err != nil {
		return domain.Visit{}, fmt.Errorf("service.VisitService.Transition: %w", err)
	}

	// The payload is checked only after the policy has accepted the actor and
	// the stored status, so a forbidden or illegal transition is reported as
	// such whatever the caller sent.
	var driver domain.Profile
	before, after, err := s.mutate(ctx, id, actor, op, func(v *domain.Visit, now time.Time) error {
		if err := validatePayload(op, p); err != nil {
			return err
		}
		if op == domain.OpApprove {
			d, err := s.driver(ctx, *p.DriverID)
			if err != nil {
				return err
			}
			driver = d
		}
		return applyTransition(v, op, actor, driver, p, now)
	})
	if err != nil {
		return domain.Visit{}, fmt.Errorf("service.VisitService.Transition: %w", err)
	}

	s.log.InfoContext(ctx, "site visit transitioned",
		"visit_id", id,
		"operation", op,
		"from", before.Status,
		"to", after.Status,
		"actor_id", actor.ID,
	)
	s.dispatch(ctx, notificationsFor(op, before, after, actor, driver, s.now()))
	return after, nil
}

// Approve assigns driverID and approves a pending visit.
func (s *VisitService) Approve(ctx context.Context, id domain.VisitID, actorID, driverID domain.ProfileID) (domain.Visit, error) {
	return s.Transition(ctx, id, actorID, domain.OpApprove, TransitionPayload{DriverID: &driverID})
}

// Decline rejects a pending visit with a reason shown to the requester.
func (s *VisitService) Decline(ctx context.Context, id domain.VisitID, actorID domain.ProfileID, reason string) (domain.Visit, error) {
	return s.Transition(ctx, id, actorID, domain.OpDecline, TransitionPayload{Reason: reason})
}

// RequestClarification sends a pending visit back to its requester with a question.
func (s *VisitService) RequestClarification(ctx context.Context, id domain.VisitID, actorID domain.ProfileID, note string) (domain.Visit, error) {
	return s.Transition(ctx, id, actorID, domain.OpRequestClarification, TransitionPayload{Note: note})
}

// SubmitClarification answers a clarification request and returns the visit
// to the approvers' queue.
func (s *VisitService) SubmitClarification(ctx context.Context, id domain.VisitID, actorID domain.ProfileID, response string) (domain.Visit, error) {
	return s.Transition(ctx, id, actorID, domain.OpSubmitClarification, TransitionPayload{Response: response})
}

// StartTrip records the starting odometer reading of an approved visit.
func (s *VisitService) StartTrip(ctx context.Context, id domain.VisitID, actorID domain.ProfileID, odometer domain.OdometerReading) (domain.Visit, error) {
	return s.Transition(ctx, id, actorID, domain.OpStartTrip, TransitionPayload{Odometer: &odometer})
}

// CompleteTrip records the final odometer reading and closes the visit.
func (s *VisitService) CompleteTrip(ctx context.Context, id domain.VisitID, actorID domain.ProfileID, odometer domain.OdometerReading) (domain.Visit, error) {
	return s.Transition(ctx, id, actorID, domain.OpCompleteTrip, TransitionPayload{Odometer: &odometer})
}

// validatePayload runs the checks that need no stored state.
func validatePayload(op domain.Operation, p TransitionPayload) error {
	switch op {
	case domain.OpApprove:
		if p.DriverID == nil || p.DriverID.IsZero() {
			return domain.NewValidationError("driver_id", "is required")
		}
	case domain.OpDecline:
		if strings.TrimSpace(p.Reason) == "" {
			return domain.NewValidationError("reason", "is required")
		}
	case domain.OpRequestClarification:
		return clarification.ValidateRequest(p.Note)
	case domain.OpSubmitClarification:
		return clarification.ValidateResponse(p.Response)
	case domain.OpStartTrip:
		if p.Odometer == nil {
			return domain.NewValidationError("odometer", "is required")
		}
		return telemetry.ValidateStart(*p.Odometer)
	case domain.OpCompleteTrip:
		if p.Odometer == nil {
			return domain.NewValidationError("odometer", "is required")
		}
	}
	return nil
}

// driver resolves the profile proposed for assignment. A profile that exists
// but cannot drive is reported the same way as a missing one.
func (s *VisitService) driver(ctx context.Context, id domain.ProfileID) (domain.Profile, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Profile{}, &domain.NotFoundError{Entity: "driver", ID: id.String()}
	}
	if err != nil {
		return domain.Profile{}, storeErr("load driver", err)
	}
	if !p.CanDrive() {
		return domain.Profile{}, &domain.NotFoundError{Entity: "driver", ID: id.String(), Reason: "is not an active driver"}
	}
	return p, nil
}

// applyTransition sets the fields op owns on v. The status itself is set by
// the caller from the policy's target.
func applyTransition(v *domain.Visit, op domain.Operation, actor, driver domain.Profile, p TransitionPayload, now time.Time) error {
	switch op {
	case domain.OpApprove:
		v.DriverID = &driver.ID
		v.ApprovedBy = &actor.ID
		v.ApprovedAt = &now
		v.ClarificationNote = nil
	case domain.OpDecline:
		reason := strings.TrimSpace(p.Reason)
		v.RejectionReason = &reason
		v.ApprovedBy = &actor.ID
		v.ApprovedAt = &now
		v.ClarificationNote = nil
	case domain.OpRequestClarification:
		note := strings.TrimSpace(p.Note)
		v.ClarificationNote = &note
		v.ApprovedBy = &actor.ID
		v.ApprovedAt = &now
	case domain.OpSubmitClarification:
		v.Notes = clarification.AppendResponse(v.Notes, p.Response, now)
		v.ClarificationResponses++
		v.ClarificationNote = nil
	case domain.OpStartTrip:
		start := *p.Odometer
		v.StartOdometer = &start
	case domain.OpCompleteTrip:
		if v.StartOdometer == nil {
			return fmt.Errorf("visit %s is %s without a start odometer", v.ID, v.Status)
		}
		if err := telemetry.ValidateEnd(*v.StartOdometer, *p.Odometer); err != nil {
			return err
		}
		end := *p.Odometer
		v.EndOdometer = &end
	default:
		return fmt.Errorf("no field effects defined for %s", op)
	}
	return nil
}
