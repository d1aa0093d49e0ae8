// Package domain contains the core data types for the site-visit dispatch service.
// It is imported by every other internal package (policy, repo, service, handler)
// and depends on nothing internal.
package domain

import (
	"errors"
	"fmt"
	"time"
)

// Status is the lifecycle state of a Visit.
type Status string

const (
	StatusPending              Status = "pending"
	StatusApproved             Status = "approved"
	StatusDeclined             Status = "declined"
	StatusPendingClarification Status = "pending_clarification"
	StatusTripStarted          Status = "trip_started"
	StatusCompleted            Status = "completed"

	// StatusCancelled exists in stored data but no operation produces it.
	StatusCancelled Status = "cancelled"
)

// Statuses lists every status a stored visit may carry.
var Statuses = []Status{
	StatusPending,
	StatusApproved,
	StatusDeclined,
	StatusPendingClarification,
	StatusTripStarted,
	StatusCompleted,
	StatusCancelled,
}

// ParseStatus returns the Status named by s, or an error for unknown values.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown visit status %q", s)
}

// Terminal reports whether no operation leads out of the status.
func (s Status) Terminal() bool {
	return s == StatusDeclined || s == StatusCompleted || s == StatusCancelled
}

// Visibility controls who besides the requester may see a visit.
// It is set at creation and never transitioned.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// ParseVisibility returns the Visibility named by s, or an error for unknown values.
func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(s) {
	case VisibilityPublic, VisibilityPrivate:
		return Visibility(s), nil
	}
	return "", fmt.Errorf("unknown visibility %q", s)
}

// Operation names a request a caller can make against a visit.
type Operation string

const (
	OpCreate               Operation = "create"
	OpEdit                 Operation = "edit"
	OpDelete               Operation = "delete"
	OpApprove              Operation = "approve"
	OpDecline              Operation = "decline"
	OpRequestClarification Operation = "request_clarification"
	OpSubmitClarification  Operation = "submit_clarification"
	OpStartTrip            Operation = "start_trip"
	OpCompleteTrip         Operation = "complete_trip"
)

// Transitions lists the operations that move a visit between statuses.
var Transitions = []Operation{
	OpApprove,
	OpDecline,
	OpRequestClarification,
	OpSubmitClarification,
	OpStartTrip,
	OpCompleteTrip,
}

// ParseTransition returns the transition operation named by s.
func ParseTransition(s string) (Operation, error) {
	for _, op := range Transitions {
		if string(op) == s {
			return op, nil
		}
	}
	return "", fmt.Errorf("unknown transition %q", s)
}

// Visit is a customer site-visit request and its full lifecycle record.
//
// Optional fields are pointers so that "absent" is distinguishable from a zero
// value; CheckInvariants ties their presence to Status.
type Visit struct {
	ID          VisitID
	RequesterID ProfileID

	CustomerName   string
	CustomerPhone  string
	PickupLocation string   // empty when the customer is met on site
	ProjectIDs     []string // at least one target project
	VisitDate      time.Time
	VisitTime      string // "15:04"
	Visibility     Visibility

	Status     Status
	DriverID   *ProfileID
	ApprovedBy *ProfileID
	ApprovedAt *time.Time

	Notes             string
	RejectionReason   *string
	ClarificationNote *string

	// ClarificationResponses counts the responses appended to Notes. Once it
	// is non-zero the stored notes are a trail that edits may only extend.
	ClarificationResponses int

	StartOdometer *OdometerReading
	EndOdometer   *OdometerReading

	// Version is the optimistic-concurrency token. Every successful write
	// increments it; a write carrying a stale version is rejected.
	Version int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy reports whether p created the visit.
func (v Visit) IsOwnedBy(p ProfileID) bool { return v.RequesterID == p }

// IsAssignedTo reports whether p is the visit's assigned driver.
func (v Visit) IsAssignedTo(p ProfileID) bool {
	return v.DriverID != nil && *v.DriverID == p
}

// Clone returns a copy of v that shares no mutable state with it.
func (v Visit) Clone() Visit {
	c := v
	if v.ProjectIDs != nil {
		c.ProjectIDs = append([]string(nil), v.ProjectIDs...)
	}
	return c
}

// CheckInvariants verifies that the optional fields present on v agree with
// its status. A visit that fails this check must never be written.
func (v Visit) CheckInvariants() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	started := v.Status == StatusTripStarted || v.Status == StatusCompleted
	assigned := started || v.Status == StatusApproved

	check((v.StartOdometer != nil) == started, "start_odometer presence does not match status %s", v.Status)
	check((v.EndOdometer != nil) == (v.Status == StatusCompleted), "end_odometer presence does not match status %s", v.Status)
	if v.StartOdometer != nil && v.EndOdometer != nil {
		check(*v.EndOdometer > *v.StartOdometer, "end_odometer %d must exceed start_odometer %d", *v.EndOdometer, *v.StartOdometer)
	}
	check((v.DriverID != nil) == assigned, "driver_id presence does not match status %s", v.Status)
	check((v.RejectionReason != nil) == (v.Status == StatusDeclined), "rejection_reason presence does not match status %s", v.Status)
	check((v.ClarificationNote != nil) == (v.Status == StatusPendingClarification), "clarification_note presence does not match status %s", v.Status)
	check(v.ClarificationResponses >= 0, "clarification_responses %d is negative", v.ClarificationResponses)

	return errors.Join(errs...)
}

// VisitFilter narrows a visit listing. Nil fields do not filter.
type VisitFilter struct {
	Status      *Status
	RequesterID *ProfileID
	DriverID    *ProfileID
	From        *time.Time // visit_date >= From
	To          *time.Time // visit_date <= To
}
