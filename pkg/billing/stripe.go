package billing

import (
	"context"
	"errors"
	"net/http"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// StripeGateway looks up customers and subscriptions through the Stripe API.
type StripeGateway struct {
	api *client.API
}

// StripeOption configures StripeGateway.
type StripeOption func(*stripe.BackendConfig)

// WithStripeURL points the SDK at another API base URL.
func WithStripeURL(url string) StripeOption {
	return func(c *stripe.BackendConfig) { c.URL = stripe.String(url) }
}

// WithStripeHTTPClient sets the HTTP client used by the SDK.
func WithStripeHTTPClient(hc *http.Client) StripeOption {
	return func(c *stripe.BackendConfig) { c.HTTPClient = hc }
}

// NewStripeGateway returns ErrMisconfigured when secretKey is empty.
// SDK network retries are disabled; callers own the retry policy.
func NewStripeGateway(secretKey string, opts ...StripeOption) (*StripeGateway, error) {
	if secretKey == "" {
		return nil, errors.Join(ErrMisconfigured, errors.New("STRIPE_SECRET_KEY is empty"))
	}

	cfg := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, cfg)

	api := &client.API{}
	api.Init(secretKey, &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
	return &StripeGateway{api: api}, nil
}

func (g *StripeGateway) Name() string { return ProviderStripe }

func (g *StripeGateway) FindCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Limit = stripe.Int64(1)
	params.Context = ctx

	it := g.api.Customers.List(params)
	if !it.Next() {
		if err := it.Err(); err != nil {
			return nil, errors.Join(ErrProviderRequest, err)
		}
		return nil, nil
	}

	c := it.Customer()
	if c == nil || c.ID == "" {
		return nil, errors.Join(ErrMalformedResponse, errors.New("customer without id"))
	}
	return &Customer{ID: c.ID, Email: c.Email}, nil
}

func (g *StripeGateway) FindActiveSubscription(ctx context.Context, customerID string) (*Subscription, error) {
	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String(string(stripe.SubscriptionStatusActive)),
	}
	params.Limit = stripe.Int64(1)
	params.Context = ctx

	it := g.api.Subscriptions.List(params)
	if !it.Next() {
		if err := it.Err(); err != nil {
			return nil, errors.Join(ErrProviderRequest, err)
		}
		return nil, nil
	}

	s := it.Subscription()
	if s == nil || s.ID == "" {
		return nil, errors.Join(ErrMalformedResponse, errors.New("subscription without id"))
	}
	return &Subscription{ID: s.ID, CustomerID: customerID, Status: string(s.Status)}, nil
}
