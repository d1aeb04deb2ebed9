package guard

import "errors"

var (
	ErrRedirectFailed  = errors.New("guard: redirect failed")
	ErrInvalidRedirect = errors.New("guard: redirect target must be a local path")
)
