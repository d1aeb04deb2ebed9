package forms_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formsaas/pkg/forms"
	"github.com/dmitrymomot/formsaas/pkg/logger"
)

func seed(t *testing.T) (*forms.MemoryStore, forms.Tenant, forms.Tenant) {
	t.Helper()
	store := forms.NewMemoryStore()
	acme := forms.Tenant{ID: uuid.New(), Slug: "acme", Name: "Acme"}
	globex := forms.Tenant{ID: uuid.New(), Slug: "globex", Name: "Globex"}
	store.PutTenant(acme)
	store.PutTenant(globex)

	store.PutForm(forms.Form{ID: uuid.New(), TenantID: acme.ID, Slug: "contato", Title: "Contato", Schema: json.RawMessage(`[]`), Published: true})
	store.PutForm(forms.Form{ID: uuid.New(), TenantID: acme.ID, Slug: "rascunho", Title: "Draft"})
	store.PutForm(forms.Form{ID: uuid.New(), TenantID: globex.ID, Slug: "inscricao", Title: "Inscrição", Published: true})
	return store, acme, globex
}

func TestService_Lookup(t *testing.T) {
	t.Parallel()
	store, acme, _ := seed(t)
	svc := forms.NewService(store, forms.WithLogger(logger.Nop()))
	ctx := context.Background()

	got, err := svc.Lookup(ctx, "acme", "contato")
	require.NoError(t, err)
	assert.Equal(t, acme.ID, got.Tenant.ID)
	assert.Equal(t, "Contato", got.Form.Title)

	cases := []struct {
		name   string
		tenant string
		form   string
		want   error
	}{
		{"draft is hidden", "acme", "rascunho", forms.ErrFormNotFound},
		{"unknown form", "acme", "nope", forms.ErrFormNotFound},
		{"unknown tenant", "initech", "contato", forms.ErrFormNotFound},
		{"other tenant's form", "acme", "inscricao", forms.ErrFormNotFound},
		{"invalid tenant slug", "Acme!", "contato", forms.ErrInvalidSlug},
		{"empty form slug", "acme", "", forms.ErrInvalidSlug},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Lookup(ctx, tc.tenant, tc.form)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

type brokenStore struct{ forms.MemoryStore }

func (brokenStore) TenantBySlug(context.Context, string) (*forms.Tenant, error) {
	return nil, errors.Join(forms.ErrStoreFailure, errors.New("conn reset"))
}

func TestService_LookupStoreFailure(t *testing.T) {
	t.Parallel()
	svc := forms.NewService(&brokenStore{}, forms.WithLogger(logger.Nop()))
	_, err := svc.Lookup(context.Background(), "acme", "contato")
	assert.ErrorIs(t, err, forms.ErrStoreFailure)
	assert.NotErrorIs(t, err, forms.ErrFormNotFound)
}

func TestService_PublicURL(t *testing.T) {
	t.Parallel()
	svc := forms.NewService(forms.NewMemoryStore(), forms.WithBaseURL("https://forms.example.com/"))
	assert.Equal(t, "https://forms.example.com/f/acme/contato", svc.PublicURL("acme", "contato"))
}

func TestService_QRCode(t *testing.T) {
	t.Parallel()
	store, _, _ := seed(t)
	svc := forms.NewService(store, forms.WithBaseURL("https://forms.example.com"), forms.WithLogger(logger.Nop()))

	data, err := svc.QRCode(context.Background(), "acme", "contato", 0)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())

	data, err = svc.QRCode(context.Background(), "acme", "contato", 5000)
	require.NoError(t, err)
	img, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1024, img.Bounds().Dx())

	_, err = svc.QRCode(context.Background(), "acme", "rascunho", 128)
	assert.ErrorIs(t, err, forms.ErrFormNotFound)
}

func TestValidSlug(t *testing.T) {
	t.Parallel()
	assert.True(t, forms.ValidSlug("acme"))
	assert.True(t, forms.ValidSlug("form-2024"))
	assert.False(t, forms.ValidSlug("-acme"))
	assert.False(t, forms.ValidSlug("acme--x"))
	assert.False(t, forms.ValidSlug("ACME"))
	assert.False(t, forms.ValidSlug(""))
}
