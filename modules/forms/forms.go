package forms

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formsaas/handler"
	"github.com/dmitrymomot/formsaas/pkg/binder"
	formsvc "github.com/dmitrymomot/formsaas/pkg/forms"
	"github.com/dmitrymomot/formsaas/pkg/logger"
)

// QRCacheMaxAge is how long clients may cache a share QR code.
const QRCacheMaxAge = time.Hour

// FormRequest addresses a form through its tenant.
type FormRequest struct {
	Tenant string `path:"tenant"`
	Form   string `path:"form"`
}

type Service struct {
	forms        *formsvc.Service
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewService(forms *formsvc.Service, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		forms:        forms,
		errorHandler: handler.NewErrorHandler(log.With(logger.Component("forms.http"))),
	}
}

// Handle serves public form routes, mounted under /t:
//
//	GET /{tenant}/forms/{form}
//	GET /{tenant}/forms/{form}/qr.png?size=256
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Route("/{tenant}/forms/{form}", func(r chi.Router) {
		r.Get("/", handler.Wrap(s.show,
			handler.WithBinders[handler.Context, FormRequest](binder.Path()),
			handler.WithErrorHandler[handler.Context, FormRequest](s.errorHandler),
		))
		r.Get("/qr.png", handler.Wrap(s.qrcode,
			handler.WithBinders[handler.Context, FormRequest](binder.Path()),
			handler.WithErrorHandler[handler.Context, FormRequest](s.errorHandler),
		))
	})

	return r
}

func (s *Service) show(ctx handler.Context, req FormRequest) handler.Response {
	published, err := s.forms.Lookup(ctx, req.Tenant, req.Form)
	if err != nil {
		return handler.JSONError(mapError(err))
	}
	return handler.JSON(published)
}

func (s *Service) qrcode(ctx handler.Context, req FormRequest) handler.Response {
	size := 0
	if raw := ctx.Request().URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return handler.JSONError(handler.ErrBadRequest.WithKey("invalid_size"))
		}
		size = n
	}

	png, err := s.forms.QRCode(ctx, req.Tenant, req.Form, size)
	if err != nil {
		return handler.JSONError(mapError(err))
	}
	return handler.CachedBlob("image/png", png, QRCacheMaxAge)
}

// mapError hides store failures behind a 500 and reports unknown or
// malformed addresses as 404.
func mapError(err error) error {
	switch {
	case errors.Is(err, formsvc.ErrFormNotFound), errors.Is(err, formsvc.ErrInvalidSlug):
		return handler.ErrNotFound.WithKey("form_not_found")
	}
	return handler.ErrInternalServerError
}
