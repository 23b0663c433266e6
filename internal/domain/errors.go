package domain

import "errors"

// Sentinel errors for the domain layer. Store implementations translate
// driver errors into these so callers never branch on pg error codes.
var (
	ErrNotFound     = errors.New("domain: not found")
	ErrConflict     = errors.New("domain: conflict")
	ErrUnauthorized = errors.New("domain: unauthorized")
	ErrForbidden    = errors.New("domain: forbidden")
	ErrInvalid      = errors.New("domain: invalid input")
	ErrUnavailable  = errors.New("domain: store unavailable")
)
