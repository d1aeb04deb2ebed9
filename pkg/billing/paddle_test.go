package billing_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formsaas/pkg/billing"
)

// fakePaddle serves /customers and /subscriptions. Keys of pages are the
// "after" cursor; the first page has the empty key.
type fakePaddle struct {
	customers     map[string]string
	subscriptions map[string]string
	status        int

	calls   atomic.Int32
	mu      sync.Mutex
	queries []url.Values
}

func (f *fakePaddle) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	f.mu.Lock()
	f.queries = append(f.queries, r.URL.Query())
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`{"error":{"type":"api_error","code":"internal_error","detail":"boom"},"meta":{"request_id":"req_1"}}`))
		return
	}

	var pages map[string]string
	switch r.URL.Path {
	case "/customers":
		pages = f.customers
	case "/subscriptions":
		pages = f.subscriptions
	}
	page, ok := pages[r.URL.Query().Get("after")]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"request_error","code":"not_found","detail":"no page"}}`))
		return
	}
	_, _ = w.Write([]byte(page))
}

func (f *fakePaddle) Queries() []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]url.Values(nil), f.queries...)
}

// paddlePage renders a list response. An empty next marks the last page.
func paddlePage(items, next string) string {
	pagination := `{"per_page":50,"next":"","has_more":false,"estimated_total":1}`
	if next != "" {
		pagination = `{"per_page":50,"next":"` + next + `","has_more":true,"estimated_total":1}`
	}
	return `{"data":[` + items + `],"meta":{"request_id":"req_1","pagination":` + pagination + `}}`
}

func newPaddle(t *testing.T, f *fakePaddle) *billing.PaddleGateway {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	gw, err := billing.NewPaddleGateway(billing.Config{
		PaddleAPIKey:      "pdl_test_123",
		PaddleEnvironment: "sandbox",
		PaddleAPIURL:      srv.URL,
	})
	require.NoError(t, err)
	return gw
}

func TestPaddleGateway_FindCustomerByEmail(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		f := &fakePaddle{customers: map[string]string{
			"": paddlePage(`{"id":"ctm_1","email":"ana@example.com","status":"active"}`, ""),
		}}
		gw := newPaddle(t, f)

		c, err := gw.FindCustomerByEmail(context.Background(), "ana@example.com")
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "ctm_1", c.ID)
		assert.Equal(t, "ana@example.com", c.Email)

		queries := f.Queries()
		require.Len(t, queries, 1)
		assert.Equal(t, "ana@example.com", queries[0].Get("email"))
	})

	t.Run("none", func(t *testing.T) {
		t.Parallel()
		gw := newPaddle(t, &fakePaddle{customers: map[string]string{"": paddlePage("", "")}})
		c, err := gw.FindCustomerByEmail(context.Background(), "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("customer without id", func(t *testing.T) {
		t.Parallel()
		gw := newPaddle(t, &fakePaddle{customers: map[string]string{
			"": paddlePage(`{"email":"x@example.com"}`, ""),
		}})
		_, err := gw.FindCustomerByEmail(context.Background(), "x@example.com")
		assert.ErrorIs(t, err, billing.ErrMalformedResponse)
	})

	t.Run("provider error is not retried", func(t *testing.T) {
		t.Parallel()
		f := &fakePaddle{status: http.StatusInternalServerError}
		gw := newPaddle(t, f)
		_, err := gw.FindCustomerByEmail(context.Background(), "x@example.com")
		assert.ErrorIs(t, err, billing.ErrProviderRequest)
		assert.Equal(t, int32(1), f.calls.Load())
	})

	t.Run("follows the next page", func(t *testing.T) {
		t.Parallel()
		f := &fakePaddle{customers: map[string]string{
			"":      paddlePage("", "https://api.paddle.com/customers?email=ana%40example.com&after=ctm_0"),
			"ctm_0": paddlePage(`{"id":"ctm_2","email":"ana@example.com"}`, ""),
		}}
		gw := newPaddle(t, f)

		c, err := gw.FindCustomerByEmail(context.Background(), "ana@example.com")
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "ctm_2", c.ID)

		queries := f.Queries()
		require.Len(t, queries, 2)
		assert.Equal(t, "ctm_0", queries[1].Get("after"))
	})

	t.Run("failing next page", func(t *testing.T) {
		t.Parallel()
		gw := newPaddle(t, &fakePaddle{customers: map[string]string{
			"": paddlePage("", "https://api.paddle.com/customers?after=gone"),
		}})
		_, err := gw.FindCustomerByEmail(context.Background(), "ana@example.com")
		assert.ErrorIs(t, err, billing.ErrProviderRequest)
	})
}

func TestPaddleGateway_FindActiveSubscription(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		f := &fakePaddle{subscriptions: map[string]string{
			"": paddlePage(`{"id":"sub_9","status":"active","customer_id":"ctm_1"}`, ""),
		}}
		gw := newPaddle(t, f)

		s, err := gw.FindActiveSubscription(context.Background(), "ctm_1")
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, "sub_9", s.ID)
		assert.Equal(t, "ctm_1", s.CustomerID)
		assert.Equal(t, "active", s.Status)

		queries := f.Queries()
		require.Len(t, queries, 1)
		assert.Equal(t, "ctm_1", queries[0].Get("customer_id"))
		assert.Equal(t, []string{"active"}, queries[0]["status"])
	})

	t.Run("none", func(t *testing.T) {
		t.Parallel()
		gw := newPaddle(t, &fakePaddle{subscriptions: map[string]string{"": paddlePage("", "")}})
		s, err := gw.FindActiveSubscription(context.Background(), "ctm_1")
		require.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("subscription without id", func(t *testing.T) {
		t.Parallel()
		gw := newPaddle(t, &fakePaddle{subscriptions: map[string]string{
			"": paddlePage(`{"status":"active"}`, ""),
		}})
		_, err := gw.FindActiveSubscription(context.Background(), "ctm_1")
		assert.ErrorIs(t, err, billing.ErrMalformedResponse)
	})

	t.Run("provider error", func(t *testing.T) {
		t.Parallel()
		gw := newPaddle(t, &fakePaddle{status: http.StatusBadRequest})
		_, err := gw.FindActiveSubscription(context.Background(), "ctm_1")
		assert.ErrorIs(t, err, billing.ErrProviderRequest)
	})
}
