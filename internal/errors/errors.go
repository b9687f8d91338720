// Package errors provides the domain error taxonomy shared by all modules.
// Use cases return these sentinels (possibly wrapped) so that handlers can map
// them to HTTP status codes without inspecting infrastructure errors.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request carries no authenticated identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated identity lacks the required
	// capability or does not own the resource.
	ErrForbidden = errors.New("forbidden")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
