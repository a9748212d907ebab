package usecase

import "errors"

// Sentinel errors wrapped by the services with fmt.Errorf("%w: ...").
// The HTTP layer maps them to status codes with errors.Is.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
