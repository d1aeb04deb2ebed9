package verifier

import "errors"

var (
	// ErrBadRequest is returned for a missing or empty email.
	ErrBadRequest = errors.New("email is required")
	// ErrServiceUnavailable is returned when the provider cannot answer or is not configured.
	ErrServiceUnavailable = errors.New("subscription verification unavailable")
)
