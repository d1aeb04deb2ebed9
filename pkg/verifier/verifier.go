package verifier

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/formsaas/pkg/async"
	"github.com/dmitrymomot/formsaas/pkg/billing"
	"github.com/dmitrymomot/formsaas/pkg/logger"
)

// Verifier checks emails against a billing gateway. It holds no per-call
// state and is safe for concurrent use.
type Verifier struct {
	gw     billing.Gateway
	budget time.Duration
	log    *slog.Logger
	rec    Recorder
}

// New returns a Verifier. A nil gateway is accepted: the misconfiguration
// is logged once here and every Verify call answers ErrServiceUnavailable.
func New(gw billing.Gateway, opts ...Option) *Verifier {
	v := &Verifier{
		gw:     gw,
		budget: DefaultBudget,
		log:    slog.Default(),
		rec:    nopRecorder{},
	}
	for _, opt := range opts {
		opt(v)
	}
	v.log = v.log.With(logger.Component("verifier"))

	if gw == nil {
		v.log.Error("billing gateway is not configured, subscription verification disabled",
			logger.Error(billing.ErrMisconfigured),
		)
	}
	return v
}

// Configured reports whether a gateway is present.
func (v *Verifier) Configured() bool { return v.gw != nil }

// Verify checks whether email belongs to a customer with an active
// subscription. The error is nil, ErrBadRequest or ErrServiceUnavailable;
// the returned Result always carries a user-facing message.
func (v *Verifier) Verify(ctx context.Context, email string) (Result, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		v.rec.RecordOutcome(OutcomeBadRequest)
		return Result{Message: MessageBadRequest, Outcome: OutcomeBadRequest}, ErrBadRequest
	}
	if v.gw == nil {
		v.rec.RecordOutcome(OutcomeUnavailable)
		return unavailable(), ErrServiceUnavailable
	}

	log := v.log.With(logger.Email(email), logger.Provider(v.gw.Name()))

	customer := lookup(ctx, v, StepCustomer, func(ctx context.Context) (*billing.Customer, error) {
		return v.gw.FindCustomerByEmail(ctx, email)
	})
	switch {
	case customer.TimedOut:
		log.WarnContext(ctx, "customer lookup timed out, treating as no customer", logger.Step(StepCustomer))
		return v.finish(notFound(OutcomeNoCustomer)), nil
	case customer.Err != nil:
		return v.fail(ctx, log, StepCustomer, customer.Err)
	case customer.Value == nil:
		return v.finish(notFound(OutcomeNoCustomer)), nil
	case customer.Value.ID == "":
		return v.fail(ctx, log, StepCustomer, errors.Join(billing.ErrMalformedResponse, errors.New("customer without id")))
	}

	customerID := customer.Value.ID
	log = log.With(logger.CustomerID(customerID))

	sub := lookup(ctx, v, StepSubscription, func(ctx context.Context) (*billing.Subscription, error) {
		return v.gw.FindActiveSubscription(ctx, customerID)
	})
	switch {
	case sub.TimedOut:
		log.WarnContext(ctx, "subscription lookup timed out, treating as no active subscription", logger.Step(StepSubscription))
		return v.finish(notFound(OutcomeNoActiveSubscription)), nil
	case sub.Err != nil:
		return v.fail(ctx, log, StepSubscription, sub.Err)
	case sub.Value == nil:
		return v.finish(notFound(OutcomeNoActiveSubscription)), nil
	}

	res, ok := found(customerID, sub.Value.ID)
	if !ok {
		return v.fail(ctx, log, StepSubscription, errors.Join(billing.ErrMalformedResponse, errors.New("subscription without id")))
	}
	log.DebugContext(ctx, "active subscription found")
	return v.finish(res), nil
}

func lookup[T any](ctx context.Context, v *Verifier, step string, fn func(context.Context) (T, error)) async.Outcome[T] {
	start := time.Now()
	out := async.Bounded(ctx, v.budget, fn)
	v.rec.RecordLatency(step, time.Since(start))
	if out.TimedOut {
		v.rec.RecordTimeout(step)
	}
	return out
}

func (v *Verifier) finish(r Result) Result {
	v.rec.RecordOutcome(r.Outcome)
	return r
}

func (v *Verifier) fail(ctx context.Context, log *slog.Logger, step string, err error) (Result, error) {
	log.ErrorContext(ctx, "subscription verification failed", logger.Step(step), logger.Error(err))
	return v.finish(unavailable()), ErrServiceUnavailable
}
