package forms_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formsaas/modules/forms"
	formsvc "github.com/dmitrymomot/formsaas/pkg/forms"
	"github.com/dmitrymomot/formsaas/pkg/logger"
)

type brokenStore struct{}

func (brokenStore) TenantBySlug(context.Context, string) (*formsvc.Tenant, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) PublishedForm(context.Context, uuid.UUID, string) (*formsvc.Form, error) {
	return nil, errors.New("connection refused")
}

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	store := formsvc.NewMemoryStore()
	acme := formsvc.Tenant{ID: uuid.New(), Slug: "acme", Name: "Acme"}
	globex := formsvc.Tenant{ID: uuid.New(), Slug: "globex", Name: "Globex"}
	store.PutTenant(acme)
	store.PutTenant(globex)
	store.PutForm(formsvc.Form{ID: uuid.New(), TenantID: acme.ID, Slug: "contato", Title: "Contato", Schema: json.RawMessage(`[{"type":"email"}]`), Published: true})
	store.PutForm(formsvc.Form{ID: uuid.New(), TenantID: acme.ID, Slug: "rascunho", Title: "Draft"})

	svc := formsvc.NewService(store, formsvc.WithBaseURL("https://forms.example.com"), formsvc.WithLogger(logger.Nop()))
	r := http.NewServeMux()
	r.Handle("/t/", http.StripPrefix("/t", forms.NewService(svc, logger.Nop()).Handle()))
	return r
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestShow(t *testing.T) {
	t.Parallel()
	rec := get(newHandler(t), "/t/acme/forms/contato")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Data formsvc.Published `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "acme", body.Data.Tenant.Slug)
	assert.Equal(t, "contato", body.Data.Form.Slug)
	assert.JSONEq(t, `[{"type":"email"}]`, string(body.Data.Form.Schema))
}

func TestShow_NotFound(t *testing.T) {
	t.Parallel()
	h := newHandler(t)

	cases := []struct {
		name string
		path string
	}{
		{"unknown tenant", "/t/initech/forms/contato"},
		{"unknown form", "/t/acme/forms/nope"},
		{"draft form", "/t/acme/forms/rascunho"},
		{"other tenant", "/t/globex/forms/contato"},
		{"invalid slug", "/t/ACME/forms/contato"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := get(h, tc.path)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":"form_not_found"`)
		})
	}
}

func TestShow_StoreFailure(t *testing.T) {
	t.Parallel()
	svc := formsvc.NewService(brokenStore{}, formsvc.WithLogger(logger.Nop()))
	h := http.StripPrefix("/t", forms.NewService(svc, logger.Nop()).Handle())

	rec := get(h, "/t/acme/forms/contato")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestQRCode(t *testing.T) {
	t.Parallel()
	h := newHandler(t)

	rec := get(h, "/t/acme/forms/contato/qr.png?size=128")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}

func TestQRCode_Errors(t *testing.T) {
	t.Parallel()
	h := newHandler(t)

	assert.Equal(t, http.StatusBadRequest, get(h, "/t/acme/forms/contato/qr.png?size=big").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "/t/acme/forms/contato/qr.png?size=-1").Code)
	assert.Equal(t, http.StatusNotFound, get(h, "/t/acme/forms/rascunho/qr.png").Code)
}
