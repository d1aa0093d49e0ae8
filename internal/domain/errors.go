package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the store.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, non-positive odometer).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrForbidden is returned when the acting profile's role, ownership or
// assignment does not permit the operation. Handlers map it to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrIllegalTransition is returned when the operation is not valid from the
// visit's current status. Handlers map it to HTTP 409.
var ErrIllegalTransition = errors.New("illegal transition")

// ErrConflict is returned by repo writes whose expected version no longer
// matches the stored record.
var ErrConflict = errors.New("conflict")

// ErrInfrastructure marks a failure of the record store or another backing
// service. The operation may be retried by the caller.
var ErrInfrastructure = errors.New("infrastructure error")

// ErrUnauthenticated is returned when a request carries no usable identity.
var ErrUnauthenticated = errors.New("unauthenticated")

// ValidationError names the input field that failed and why.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError returns a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// AuthorizationError reports that the actor may not perform Operation.
type AuthorizationError struct {
	Operation Operation
	Reason    string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrForbidden, e.Operation, e.Reason)
}

func (e *AuthorizationError) Is(target error) bool { return target == ErrForbidden }

// IllegalTransitionError reports that Operation cannot be applied to a visit
// in status Current. Current is the status observed at evaluation time so the
// caller can refresh its view.
type IllegalTransitionError struct {
	Operation Operation
	Current   Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s a visit in status %s", ErrIllegalTransition, e.Operation, e.Current)
}

func (e *IllegalTransitionError) Is(target error) bool { return target == ErrIllegalTransition }

// NotFoundError names the missing entity. Entity is "site visit" or "profile";
// Reason is set when the record exists but is unusable (e.g. an inactive driver).
type NotFoundError struct {
	Entity string
	ID     string
	Reason string
}

func (e *NotFoundError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %s %s", e.Entity, e.ID, e.Reason)
	}
	return fmt.Sprintf("%s %s %s", e.Entity, e.ID, ErrNotFound)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InfrastructureError wraps a record store or notifier failure.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrInfrastructure, e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error { return e.Err }

func (e *InfrastructureError) Is(target error) bool { return target == ErrInfrastructure }
