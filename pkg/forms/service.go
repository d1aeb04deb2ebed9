package forms

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/dmitrymomot/formsaas/pkg/logger"
)

// Published is a form resolved through its tenant.
type Published struct {
	Tenant Tenant `json:"tenant"`
	Form   Form   `json:"form"`
}

// Service resolves public forms.
type Service struct {
	store   Store
	baseURL string
	log     *slog.Logger
}

type Option func(*Service)

// WithBaseURL sets the public origin used for share links.
func WithBaseURL(u string) Option {
	return func(s *Service) { s.baseURL = strings.TrimRight(u, "/") }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("forms"))
	return s
}

// Lookup returns the tenant's published form. An unknown tenant and an
// unknown form are both reported as ErrFormNotFound.
func (s *Service) Lookup(ctx context.Context, tenantSlug, formSlug string) (*Published, error) {
	if !ValidSlug(tenantSlug) || !ValidSlug(formSlug) {
		return nil, ErrInvalidSlug
	}

	tenant, err := s.store.TenantBySlug(ctx, tenantSlug)
	if err != nil {
		return nil, s.notFound(ctx, err, tenantSlug, formSlug)
	}
	form, err := s.store.PublishedForm(ctx, tenant.ID, formSlug)
	if err != nil {
		return nil, s.notFound(ctx, err, tenantSlug, formSlug)
	}
	// stores are trusted, but a form must never leak across tenants
	if form.TenantID != tenant.ID || !form.Published {
		return nil, ErrFormNotFound
	}
	return &Published{Tenant: *tenant, Form: *form}, nil
}

func (s *Service) notFound(ctx context.Context, err error, tenantSlug, formSlug string) error {
	if errors.Is(err, ErrTenantNotFound) || errors.Is(err, ErrFormNotFound) {
		return ErrFormNotFound
	}
	s.log.ErrorContext(ctx, "form lookup failed",
		slog.String("tenant", tenantSlug),
		slog.String("form", formSlug),
		logger.Error(err),
	)
	return err
}

// PublicURL returns the share link of a form.
func (s *Service) PublicURL(tenantSlug, formSlug string) string {
	return s.baseURL + "/f/" + url.PathEscape(tenantSlug) + "/" + url.PathEscape(formSlug)
}

// QRCode renders the share link of a published form as a PNG.
func (s *Service) QRCode(ctx context.Context, tenantSlug, formSlug string, size int) ([]byte, error) {
	if _, err := s.Lookup(ctx, tenantSlug, formSlug); err != nil {
		return nil, err
	}
	return generateQR(s.PublicURL(tenantSlug, formSlug), size)
}
