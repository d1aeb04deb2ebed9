package billing

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formsaas/handler"
	"github.com/dmitrymomot/formsaas/pkg/jwt"
	"github.com/dmitrymomot/formsaas/pkg/logger"
	"github.com/dmitrymomot/formsaas/pkg/subscription"
)

// SubscriptionState is the JSON view of a hook snapshot.
type SubscriptionState struct {
	Status               subscription.Status `json:"status"`
	IsActive             bool                `json:"is_active"`
	ExpiresAt            *time.Time          `json:"expires_at,omitempty"`
	StripeCustomerID     string              `json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID string              `json:"stripe_subscription_id,omitempty"`
	// Error is a fixed message; lookup errors are only logged.
	Error string `json:"error,omitempty"`
}

const errLookupFailed = "subscription lookup failed"

// Per-user state must not be kept by shared caches.
var noStore = handler.WithJSONHeader("Cache-Control", "no-store")

func newSubscriptionState(s subscription.State) SubscriptionState {
	out := SubscriptionState{
		Status:               s.Status,
		IsActive:             s.IsActive,
		ExpiresAt:            s.ExpiresAt,
		StripeCustomerID:     s.StripeCustomerID,
		StripeSubscriptionID: s.StripeSubscriptionID,
	}
	if s.Status == subscription.StatusError || s.Err != nil {
		out.Error = errLookupFailed
	}
	return out
}

type SubscriptionService struct {
	query        *subscription.Query
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewSubscriptionService(q *subscription.Query, log *slog.Logger) *SubscriptionService {
	if log == nil {
		log = slog.Default()
	}
	return &SubscriptionService{
		query:        q,
		errorHandler: handler.NewErrorHandler(log.With(logger.Component("billing.subscription"))),
	}
}

func (s *SubscriptionService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(s.state,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Post("/refetch", handler.Wrap(s.refetch,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	return r
}

// state answers with the hook state of the authenticated user. Anonymous
// callers get the terminal inactive state.
func (s *SubscriptionService) state(ctx handler.Context, _ struct{}) handler.Response {
	st := s.query.Use(jwt.UserID(ctx)).Start(ctx)
	return handler.JSON(newSubscriptionState(st), noStore)
}

func (s *SubscriptionService) refetch(ctx handler.Context, _ struct{}) handler.Response {
	st := s.query.Use(jwt.UserID(ctx)).Refetch(ctx)
	return handler.JSON(newSubscriptionState(st), noStore)
}
