package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Claims are the claims carried by a Supabase access token.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	gojwt.RegisteredClaims
}

// Service verifies and issues HS256 tokens.
type Service struct {
	signingKey []byte
	audience   string
	leeway     time.Duration
	now        func() time.Time
}

type Option func(*Service)

// WithAudience requires tokens to carry aud.
func WithAudience(aud string) Option {
	return func(s *Service) { s.audience = aud }
}

// WithLeeway tolerates clock skew on exp and nbf.
func WithLeeway(d time.Duration) Option {
	return func(s *Service) { s.leeway = d }
}

// WithClock replaces time.Now, used for temporal claims.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a service with the provided signing key.
func New(signingKey []byte, opts ...Option) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	s := &Service{signingKey: signingKey, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewFromConfig builds a service from the Supabase settings.
func NewFromConfig(cfg Config) (*Service, error) {
	return New([]byte(cfg.Secret), WithAudience(cfg.Audience), WithLeeway(30*time.Second))
}

// Generate signs claims with HS256. It is used to mint tokens in tests and
// local development; production tokens are issued by Supabase.
func (s *Service) Generate(claims *Claims) (string, error) {
	if claims == nil {
		return "", ErrMissingClaims
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Parse verifies the token signature and temporal claims and returns its claims.
// Only HS256 is accepted and a subject is required.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithLeeway(s.leeway),
		gojwt.WithTimeFunc(s.now),
		gojwt.WithExpirationRequired(),
	}
	if s.audience != "" {
		opts = append(opts, gojwt.WithAudience(s.audience))
	}

	claims := &Claims{}
	_, err := gojwt.NewParser(opts...).ParseWithClaims(tokenString, claims, func(*gojwt.Token) (any, error) {
		return s.signingKey, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, gojwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return nil, errors.Join(ErrInvalidToken, err)
	case errors.Is(err, gojwt.ErrTokenInvalidAudience):
		return nil, ErrInvalidAudience
	default:
		return nil, errors.Join(ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}
