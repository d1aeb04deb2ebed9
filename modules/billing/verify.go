package billing

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formsaas/handler"
	"github.com/dmitrymomot/formsaas/pkg/binder"
	"github.com/dmitrymomot/formsaas/pkg/logger"
	"github.com/dmitrymomot/formsaas/pkg/ratelimit"
	"github.com/dmitrymomot/formsaas/pkg/verifier"
)

// VerifyRequest is the body of POST /verificar-assinante.
type VerifyRequest struct {
	Email string `json:"email"`
}

// VerifyCustomer identifies the matched billing customer.
type VerifyCustomer struct {
	ID             string `json:"id"`
	SubscriptionID string `json:"subscription_id"`
}

// VerifyResponse is the wire format of the verification endpoint. Exactly
// one of Customer and Message is set.
type VerifyResponse struct {
	Success  bool            `json:"success"`
	Customer *VerifyCustomer `json:"customer,omitempty"`
	Message  string          `json:"message,omitempty"`
}

type VerifyService struct {
	verifier *verifier.Verifier
	limiter  ratelimit.Limiter
	log      *slog.Logger
}

// NewVerifyService builds the verification endpoint. A nil limiter
// disables rate limiting.
func NewVerifyService(v *verifier.Verifier, limiter ratelimit.Limiter, log *slog.Logger) *VerifyService {
	if log == nil {
		log = slog.Default()
	}
	return &VerifyService{
		verifier: v,
		limiter:  limiter,
		log:      log.With(logger.Component("billing.verify")),
	}
}

func (s *VerifyService) Handle() http.Handler {
	r := chi.NewRouter()

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, failure(http.StatusMethodNotAllowed, verifier.MessageMethodNotAllowed,
			handler.WithJSONHeader("Allow", http.MethodPost),
		))
	})

	if s.limiter != nil {
		r.Use(ratelimit.Middleware(s.limiter, ratelimit.ClientIP,
			ratelimit.WithLogger(s.log),
			ratelimit.WithOnLimitReached(func(w http.ResponseWriter, r *http.Request, _ *ratelimit.Result) {
				s.render(w, r, failure(http.StatusTooManyRequests, verifier.MessageTooManyRequests))
			}),
		))
	}

	r.Post("/", handler.Wrap(s.verify,
		handler.WithBinders[handler.Context, VerifyRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, VerifyRequest](s.errorHandler),
	))

	return r
}

func (s *VerifyService) verify(ctx handler.Context, req VerifyRequest) handler.Response {
	res, err := s.verifier.Verify(ctx, req.Email)
	switch {
	case errors.Is(err, verifier.ErrBadRequest):
		return failure(http.StatusBadRequest, res.Message)
	case err != nil:
		return failure(http.StatusInternalServerError, verifier.MessageUnavailable)
	case !res.Found:
		return failure(http.StatusNotFound, res.Message)
	}

	return handler.RawJSON(http.StatusOK, VerifyResponse{
		Success: true,
		Customer: &VerifyCustomer{
			ID:             res.CustomerID,
			SubscriptionID: res.SubscriptionID,
		},
	})
}

// errorHandler keeps binding failures in the endpoint's own body shape.
// Any malformed request is a 400.
func (s *VerifyService) errorHandler(ctx handler.Context, err error) {
	r := ctx.Request()
	status := handler.StatusCode(err)
	resp := failure(http.StatusInternalServerError, verifier.MessageUnavailable)
	if status < http.StatusInternalServerError {
		resp = failure(http.StatusBadRequest, verifier.MessageBadRequest)
	}

	s.log.LogAttrs(r.Context(), slog.LevelWarn, "invalid verification request",
		logger.Error(err),
		slog.Int("status_code", status),
	)
	s.render(ctx.ResponseWriter(), r, resp)
}

func (s *VerifyService) render(w http.ResponseWriter, r *http.Request, resp handler.Response) {
	if err := resp.Render(w, r); err != nil {
		s.log.ErrorContext(r.Context(), "failed to render response", logger.Error(err))
	}
}

func failure(status int, message string, opts ...handler.JSONOption) handler.Response {
	return handler.RawJSON(status, VerifyResponse{Message: message}, opts...)
}
