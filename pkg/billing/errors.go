package billing

import "errors"

var (
	// ErrMisconfigured means the provider credentials are missing or invalid.
	ErrMisconfigured = errors.New("billing provider is not configured")
	// ErrUnknownProvider is returned for an unsupported BILLING_PROVIDER value.
	ErrUnknownProvider = errors.New("unknown billing provider")
	// ErrProviderRequest wraps a failed call to the provider API.
	ErrProviderRequest = errors.New("billing provider request failed")
	// ErrMalformedResponse is returned when the provider answers with a record
	// that lacks its identifier.
	ErrMalformedResponse = errors.New("malformed billing provider response")
)
