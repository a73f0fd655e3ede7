package domain

import "errors"

// Error taxonomy shared across services and the API layer. Services
// wrap these sentinels with context; handlers map them to HTTP codes
// with errors.Is.
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrStateConflict   = errors.New("state conflict")
	ErrPersistence     = errors.New("persistence failure")
	ErrExternalService = errors.New("external service failure")
)
