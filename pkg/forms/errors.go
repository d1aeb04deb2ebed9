package forms

import "errors"

var (
	ErrTenantNotFound = errors.New("forms: tenant not found")
	ErrFormNotFound   = errors.New("forms: form not found")
	ErrInvalidSlug    = errors.New("forms: invalid slug")
	ErrStoreFailure   = errors.New("forms: store failure")
	ErrQRCode         = errors.New("forms: failed to generate QR code")
)
