package ratelimit

import "errors"

// ErrInvalidLimit is returned by New when the rate or the burst is not positive.
var ErrInvalidLimit = errors.New("ratelimit: rate and burst must be positive")
