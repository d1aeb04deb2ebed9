package guard_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formsaas/pkg/guard"
	"github.com/dmitrymomot/formsaas/pkg/jwt"
	"github.com/dmitrymomot/formsaas/pkg/logger"
	"github.com/dmitrymomot/formsaas/pkg/subscription"
)

type failingStore struct{}

func (failingStore) GetProfile(context.Context, string) (*subscription.Profile, error) {
	return nil, errors.New("db down")
}

func protected() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("protected"))
	})
}

func fallbackPage() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("fallback"))
	})
}

func requestAs(userID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/app/forms", nil)
	if userID == "" {
		return req
	}
	claims := &jwt.Claims{}
	claims.Subject = userID
	return req.WithContext(jwt.SetClaims(req.Context(), claims))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	store := subscription.NewMemoryStore(
		subscription.Profile{UserID: "paid", Status: "active"},
		subscription.Profile{UserID: "lapsed", Status: "canceled"},
	)
	q := subscription.NewQuery(store, subscription.WithLogger(logger.Nop()))

	cases := []struct {
		name     string
		user     string
		query    *subscription.Query
		opts     []guard.Option
		wantCode int
		wantBody string
		location string
	}{
		{name: "active user passes", user: "paid", query: q, wantCode: http.StatusOK, wantBody: "protected"},
		{name: "canceled user is redirected", user: "lapsed", query: q, wantCode: http.StatusSeeOther, location: "/assinatura"},
		{name: "anonymous is redirected", user: "", query: q, wantCode: http.StatusSeeOther, location: "/assinatura"},
		{name: "custom target", user: "lapsed", query: q, opts: []guard.Option{guard.WithRedirectTo("/planos")}, wantCode: http.StatusSeeOther, location: "/planos"},
		{
			name: "store error with fallback serves fallback", user: "paid",
			query:    subscription.NewQuery(failingStore{}, subscription.WithLogger(logger.Nop())),
			opts:     []guard.Option{guard.WithFallbackHandler(fallbackPage())},
			wantCode: http.StatusServiceUnavailable, wantBody: "fallback",
		},
		{
			name: "store error without fallback redirects", user: "paid",
			query:    subscription.NewQuery(failingStore{}, subscription.WithLogger(logger.Nop())),
			wantCode: http.StatusSeeOther, location: "/assinatura",
		},
		{
			name: "external redirect target is refused", user: "lapsed", query: q,
			opts:     []guard.Option{guard.WithRedirectTo("//evil.example")},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			opts := append([]guard.Option{guard.WithLogger(logger.Nop())}, tc.opts...)
			rec := httptest.NewRecorder()
			guard.Middleware(tc.query, opts...)(protected()).ServeHTTP(rec, requestAs(tc.user))

			assert.Equal(t, tc.wantCode, rec.Code)
			if tc.wantBody != "" {
				assert.Equal(t, tc.wantBody, rec.Body.String())
			}
			if tc.location != "" {
				assert.Equal(t, tc.location, rec.Header().Get("Location"))
			}
		})
	}
}
