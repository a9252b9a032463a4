package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrUnauthorized      = errors.New("unauthorized")
)

// MissingProductsError reports requested products that could not be resolved against the catalog.
type MissingProductsError struct {
	Names []string
}

func (e *MissingProductsError) Error() string {
	return "Missing products: " + strings.Join(e.Names, ", ")
}

func (e *MissingProductsError) Unwrap() error {
	return ErrNotFound
}

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

// Invalid builds ValidationError for field.
func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// TransitionError is returned when the order state machine forbids a status change.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}
