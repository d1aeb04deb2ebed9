package forms

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/formsaas/pkg/pg"
)

// DB is the subset of pgxpool.Pool used by PGStore.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGStore reads the tenants and forms tables.
type PGStore struct {
	db DB
}

func NewPGStore(db DB) *PGStore {
	return &PGStore{db: db}
}

const tenantBySlugSQL = `
SELECT id, slug, name, created_at
  FROM tenants
 WHERE slug = $1`

func (s *PGStore) TenantBySlug(ctx context.Context, slug string) (*Tenant, error) {
	var t Tenant
	err := s.db.QueryRow(ctx, tenantBySlugSQL, slug).Scan(&t.ID, &t.Slug, &t.Name, &t.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrTenantNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}
	return &t, nil
}

const publishedFormSQL = `
SELECT id, tenant_id, slug, title, COALESCE(description, ''), schema, published, updated_at
  FROM forms
 WHERE tenant_id = $1
   AND slug = $2
   AND published`

func (s *PGStore) PublishedForm(ctx context.Context, tenantID uuid.UUID, slug string) (*Form, error) {
	var f Form
	err := s.db.QueryRow(ctx, publishedFormSQL, tenantID, slug).Scan(
		&f.ID, &f.TenantID, &f.Slug, &f.Title, &f.Description, &f.Schema, &f.Published, &f.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}
	return &f, nil
}
