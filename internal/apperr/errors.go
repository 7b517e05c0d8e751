package apperr

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized indicates the caller is not bound to the entity it mutates.
var ErrUnauthorized = errors.New("unauthorized")

// ErrAlreadyAssigned indicates the order already has a partner bound to it.
var ErrAlreadyAssigned = errors.New("order already assigned")

// ErrPartnerUnavailable indicates the partner cannot take another order.
var ErrPartnerUnavailable = errors.New("partner unavailable")

// ErrInvalidTransition indicates an illegal order status change.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError carries the current status, the rejected target and
// the single status the order may legally move to ("none" on terminal states).
type InvalidTransitionError struct {
	Current   string
	Requested string
	Next      string
}

func (e *InvalidTransitionError) Error() string {
	next := e.Next
	if next == "" {
		next = "none"
	}
	return fmt.Sprintf("cannot move order from %s to %s: legal next status is %s",
		e.Current, e.Requested, next)
}

// Is makes the error match ErrInvalidTransition in errors.Is chains.
func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// NewInvalidTransition builds an InvalidTransitionError.
func NewInvalidTransition(current, requested, next string) error {
	return &InvalidTransitionError{Current: current, Requested: requested, Next: next}
}
