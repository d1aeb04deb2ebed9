package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrFailedToParsePath    = errors.New("failed to parse path parameters")
	ErrBodyTooLarge         = errors.New("request body too large")
)
