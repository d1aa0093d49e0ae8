// Package policy decides whether an actor may perform an operation on a site
// visit. It is a pure rule table: no persistence, no clock, no side effects.
package policy

import (
	"fmt"
	"slices"

	"github.com/pkordes/site-visits/internal/domain"
)

// DenyKind classifies a refusal so the caller can surface the right error.
type DenyKind int

const (
	Allow DenyKind = iota
	// DenyUnauthorized: wrong role, not the owner, or not the assigned driver.
	DenyUnauthorized
	// DenyIllegalTransition: the visit's status does not admit the operation.
	DenyIllegalTransition
)

// Request is the input to Evaluate.
type Request struct {
	Role             domain.ActorRole
	Status           domain.Status // ignored for OpCreate
	Operation        domain.Operation
	IsOwner          bool
	IsAssignedDriver bool
}

// Decision is the outcome of Evaluate.
type Decision struct {
	Kind      DenyKind
	Operation domain.Operation
	Status    domain.Status
	Reason    string
}

// Allowed reports whether the decision permits the operation.
func (d Decision) Allowed() bool { return d.Kind == Allow }

// Err converts a refusal into the matching typed domain error, or nil.
func (d Decision) Err() error {
	switch d.Kind {
	case DenyUnauthorized:
		return &domain.AuthorizationError{Operation: d.Operation, Reason: d.Reason}
	case DenyIllegalTransition:
		return &domain.IllegalTransitionError{Operation: d.Operation, Current: d.Status}
	}
	return nil
}

type rule struct {
	role     domain.ActorRole
	from     []domain.Status
	to       domain.Status
	owner    bool // actor must be the visit's requester
	assigned bool // actor must be the visit's assigned driver
}

var rules = map[domain.Operation]rule{
	domain.OpCreate: {
		role: domain.ActorRequester,
		to:   domain.StatusPending,
	},
	domain.OpEdit: {
		role:  domain.ActorRequester,
		from:  []domain.Status{domain.StatusPending},
		to:    domain.StatusPending,
		owner: true,
	},
	domain.OpDelete: {
		role:  domain.ActorRequester,
		from:  []domain.Status{domain.StatusPending},
		owner: true,
	},
	domain.OpApprove: {
		role: domain.ActorApprover,
		from: []domain.Status{domain.StatusPending, domain.StatusPendingClarification},
		to:   domain.StatusApproved,
	},
	domain.OpDecline: {
		role: domain.ActorApprover,
		from: []domain.Status{domain.StatusPending, domain.StatusPendingClarification},
		to:   domain.StatusDeclined,
	},
	domain.OpRequestClarification: {
		role: domain.ActorApprover,
		from: []domain.Status{domain.StatusPending},
		to:   domain.StatusPendingClarification,
	},
	domain.OpSubmitClarification: {
		role:  domain.ActorRequester,
		from:  []domain.Status{domain.StatusPendingClarification},
		to:    domain.StatusPending,
		owner: true,
	},
	domain.OpStartTrip: {
		role:     domain.ActorDriver,
		from:     []domain.Status{domain.StatusApproved},
		to:       domain.StatusTripStarted,
		assigned: true,
	},
	domain.OpCompleteTrip: {
		role:     domain.ActorDriver,
		from:     []domain.Status{domain.StatusTripStarted},
		to:       domain.StatusCompleted,
		assigned: true,
	},
}

// Operations returns every operation the policy knows about.
func Operations() []domain.Operation {
	ops := make([]domain.Operation, 0, len(rules))
	for op := range rules {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	return ops
}

// RoleFor returns the workflow role an operation requires.
func RoleFor(op domain.Operation) (domain.ActorRole, bool) {
	r, ok := rules[op]
	return r.role, ok
}

// AllowedFrom returns the statuses an operation may start from.
// OpCreate starts from no status and returns nil.
func AllowedFrom(op domain.Operation) []domain.Status {
	return slices.Clone(rules[op].from)
}

// Target returns the status an operation leaves the visit in.
// OpDelete has no target and returns false.
func Target(op domain.Operation) (domain.Status, bool) {
	r, ok := rules[op]
	if !ok || r.to == "" {
		return "", false
	}
	return r.to, true
}

// CheckRole evaluates only the role column of the rule table. It lets callers
// reject an actor before loading any visit state.
func CheckRole(role domain.ActorRole, op domain.Operation) Decision {
	r, ok := rules[op]
	if !ok {
		return Decision{Kind: DenyUnauthorized, Operation: op, Reason: "unknown operation"}
	}
	if role == domain.ActorNone || role != r.role {
		return Decision{
			Kind:      DenyUnauthorized,
			Operation: op,
			Reason:    fmt.Sprintf("requires the %s role", r.role),
		}
	}
	return Decision{Kind: Allow, Operation: op}
}

// Evaluate applies the full rule for req.Operation: role, then ownership or
// assignment, then current status.
func Evaluate(req Request) Decision {
	d := CheckRole(req.Role, req.Operation)
	if !d.Allowed() {
		return d
	}
	r := rules[req.Operation]
	d.Status = req.Status

	if r.owner && !req.IsOwner {
		d.Kind, d.Reason = DenyUnauthorized, "only the requester who created the visit may do this"
		return d
	}
	if r.assigned && !req.IsAssignedDriver {
		d.Kind, d.Reason = DenyUnauthorized, "only the assigned driver may do this"
		return d
	}
	if req.Operation != domain.OpCreate && !slices.Contains(r.from, req.Status) {
		d.Kind = DenyIllegalTransition
		return d
	}
	return d
}
