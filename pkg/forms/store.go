package forms

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Store reads tenants and forms.
type Store interface {
	// TenantBySlug returns ErrTenantNotFound when no tenant has the slug.
	TenantBySlug(ctx context.Context, slug string) (*Tenant, error)
	// PublishedForm returns ErrFormNotFound unless the tenant owns a published form with the slug.
	PublishedForm(ctx context.Context, tenantID uuid.UUID, slug string) (*Form, error)
}

// MemoryStore is a Store backed by maps, used in development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	tenants map[string]Tenant
	forms   map[uuid.UUID]map[string]Form
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tenants: make(map[string]Tenant),
		forms:   make(map[uuid.UUID]map[string]Form),
	}
}

// PutTenant inserts or replaces a tenant.
func (s *MemoryStore) PutTenant(t Tenant) {
	s.mu.Lock()
	s.tenants[t.Slug] = t
	s.mu.Unlock()
}

// PutForm inserts or replaces a form of its tenant.
func (s *MemoryStore) PutForm(f Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.forms[f.TenantID] == nil {
		s.forms[f.TenantID] = make(map[string]Form)
	}
	s.forms[f.TenantID][f.Slug] = f
}

func (s *MemoryStore) TenantBySlug(_ context.Context, slug string) (*Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tenants[slug]
	if !ok {
		return nil, ErrTenantNotFound
	}
	return &t, nil
}

func (s *MemoryStore) PublishedForm(_ context.Context, tenantID uuid.UUID, slug string) (*Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.forms[tenantID][slug]
	if !ok || !f.Published {
		return nil, ErrFormNotFound
	}
	return &f, nil
}
