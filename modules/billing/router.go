package billing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures which services to mount in the billing module.
// Each service is optional and will only be mounted if provided.
type RouterOptions struct {
	// Public subscription check by email
	Verify Mountable
	// Subscription state of the authenticated user
	Subscription Mountable
}

// Router creates a new billing module router with configurable services.
//
// Example:
//
//	verifySvc := billing.NewVerifyService(v, limiter, log)
//	subSvc := billing.NewSubscriptionService(query, log)
//
//	r := chi.NewRouter()
//	r.Mount("/", billing.Router(billing.RouterOptions{
//	    Verify:       verifySvc,
//	    Subscription: subSvc,
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Verify != nil {
		r.Mount("/verificar-assinante", opts.Verify.Handle())
	}
	if opts.Subscription != nil {
		r.Mount("/api/subscription", opts.Subscription.Handle())
	}

	return r
}
