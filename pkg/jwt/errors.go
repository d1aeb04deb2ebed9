package jwt

import "errors"

var (
	ErrInvalidToken      = errors.New("jwt: invalid token")
	ErrExpiredToken      = errors.New("jwt: token is expired")
	ErrMissingToken      = errors.New("jwt: missing token")
	ErrMissingSigningKey = errors.New("jwt: missing signing key")
	ErrMissingClaims     = errors.New("jwt: missing claims")
	ErrMissingSubject    = errors.New("jwt: missing subject")
	ErrInvalidAudience   = errors.New("jwt: invalid audience")
)
