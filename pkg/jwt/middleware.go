package jwt

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrymomot/formsaas/handler"
)

// MiddlewareConfig configures the middleware.
type MiddlewareConfig struct {
	Service *Service
	// Required rejects requests without a token.
	Required bool
}

// Middleware verifies an optional Bearer token. Anonymous requests pass
// through; a present but invalid token is rejected with 401.
// A nil service lets every request through as anonymous.
func Middleware(service *Service) func(next http.Handler) http.Handler {
	return MiddlewareWithConfig(MiddlewareConfig{Service: service})
}

// Required is like Middleware but also rejects anonymous requests.
func Required(service *Service) func(next http.Handler) http.Handler {
	return MiddlewareWithConfig(MiddlewareConfig{Service: service, Required: true})
}

func MiddlewareWithConfig(config MiddlewareConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := BearerTokenExtractor(r)
			if errors.Is(err, ErrMissingToken) || (err == nil && config.Service == nil) {
				if config.Required {
					reject(w, r)
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				reject(w, r)
				return
			}

			claims, err := config.Service.Parse(tokenString)
			if err != nil {
				reject(w, r)
				return
			}

			ctx := SetToken(r.Context(), tokenString)
			ctx = SetClaims(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerTokenExtractor extracts tokens from "Authorization: Bearer <token>" headers.
// It returns ErrMissingToken when the request carries none.
func BearerTokenExtractor(r *http.Request) (string, error) {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader == "" {
		return "", ErrMissingToken
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrInvalidToken
	}
	return strings.TrimSpace(token), nil
}

// reject answers 401 in the JSON error envelope.
func reject(w http.ResponseWriter, r *http.Request) {
	if err := handler.JSONError(handler.ErrUnauthorized).Render(w, r); err != nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
	}
}
