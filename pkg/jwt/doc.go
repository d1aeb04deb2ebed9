// Package jwt verifies Supabase access tokens and carries the authenticated
// user through the request context.
//
// Supabase signs access tokens with HS256 using the project JWT secret. The
// Service wraps github.com/golang-jwt/jwt/v5 with that configuration: only
// HS256 is accepted, exp is required, and aud must match when configured.
//
// # Usage
//
//	svc, err := jwt.NewFromConfig(cfg)
//	if err != nil {
//		// handle error
//	}
//
//	r.Use(jwt.Middleware(svc))            // optional auth
//	r.With(jwt.Required(svc)).Get(...)    // 401 without a valid token
//
//	userID := jwt.UserID(r.Context())     // "" when anonymous
//
// # Error Handling
//
// Sentinel errors such as ErrExpiredToken and ErrInvalidToken can be
// compared using errors.Is.
package jwt
