// Package apperr holds the error kinds shared across feature packages.
// Feature errors wrap one of these so the HTTP layer can map them with errors.Is.
package apperr

import "errors"

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned for missing, invalid or expired credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the caller lacks the role or ownership.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidOperation is returned when a domain rule rejects the request.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrConflict is returned on unique constraint violations.
	ErrConflict = errors.New("conflict")
)
