package subscription

import "errors"

var (
	// ErrProfileNotFound is returned by a ProfileStore when the user has no profile row.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrStoreFailure wraps a failed profile lookup.
	ErrStoreFailure = errors.New("failed to load subscription profile")
)
