package jwt_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formsaas/pkg/jwt"
)

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("user=" + jwt.UserID(r.Context())))
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	svc, err := jwt.New([]byte(secret))
	require.NoError(t, err)
	token, err := svc.Generate(claimsFor("user-1", time.Now().Add(time.Hour)))
	require.NoError(t, err)

	cases := []struct {
		name     string
		mw       func(http.Handler) http.Handler
		header   string
		wantCode int
		wantBody string
	}{
		{"optional with token", jwt.Middleware(svc), "Bearer " + token, http.StatusOK, "user=user-1"},
		{"optional anonymous", jwt.Middleware(svc), "", http.StatusOK, "user="},
		{"optional invalid token", jwt.Middleware(svc), "Bearer nope", http.StatusUnauthorized, ""},
		{"optional bad scheme", jwt.Middleware(svc), "Basic abc", http.StatusUnauthorized, ""},
		{"lowercase scheme", jwt.Middleware(svc), "bearer " + token, http.StatusOK, "user=user-1"},
		{"required with token", jwt.Required(svc), "Bearer " + token, http.StatusOK, "user=user-1"},
		{"required anonymous", jwt.Required(svc), "", http.StatusUnauthorized, ""},
		{"nil service is anonymous", jwt.Middleware(nil), "Bearer " + token, http.StatusOK, "user="},
		{"nil service required", jwt.Required(nil), "Bearer " + token, http.StatusUnauthorized, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			tc.mw(echoUser()).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantCode, rec.Code)
			if tc.wantBody != "" {
				assert.Equal(t, tc.wantBody, rec.Body.String())
			}
		})
	}
}

func TestMiddleware_RejectionBody(t *testing.T) {
	t.Parallel()
	svc, err := jwt.New([]byte(secret))
	require.NoError(t, err)

	for _, header := range []string{"", "Bearer nope"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		jwt.Required(svc)(echoUser()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"), header)
		assert.JSONEq(t, `{"error":{"code":"unauthorized","message":"Unauthorized"}}`, rec.Body.String(), header)
	}
}

func TestContext(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	assert.Empty(t, jwt.UserID(ctx))
	_, ok := jwt.GetClaims(ctx)
	assert.False(t, ok)

	claims := claimsFor("user-3", time.Now())
	ctx = jwt.SetClaims(jwt.SetToken(ctx, "raw"), claims)

	got, ok := jwt.GetClaims(ctx)
	require.True(t, ok)
	assert.Same(t, claims, got)
	assert.Equal(t, "user-3", jwt.UserID(ctx))

	token, ok := jwt.GetToken(ctx)
	assert.True(t, ok)
	assert.Equal(t, "raw", token)
}
