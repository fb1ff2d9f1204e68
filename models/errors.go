package models

import "errors"

// Error kinds shared by the repositories, services and controllers. The
// HTTP layer maps each one to a single status code.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")
	ErrInternal     = errors.New("internal error")

	// ErrInvalidToken is returned by token verification for a bad
	// signature, an unparsable payload or an expired token.
	ErrInvalidToken = errors.New("invalid token")
)
