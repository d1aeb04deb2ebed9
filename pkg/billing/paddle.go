package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"
)

// PaddleGateway looks up customers and subscriptions through Paddle Billing.
type PaddleGateway struct {
	client *paddle.SDK
}

// NewPaddleGateway returns ErrMisconfigured when the API key is missing or
// the environment is not "production" or "sandbox".
func NewPaddleGateway(cfg Config) (*PaddleGateway, error) {
	if cfg.PaddleAPIKey == "" {
		return nil, errors.Join(ErrMisconfigured, errors.New("PADDLE_API_KEY is empty"))
	}

	var opts []paddle.Option
	if cfg.PaddleAPIURL != "" {
		opts = append(opts, paddle.WithBaseURL(cfg.PaddleAPIURL))
	}

	var (
		client *paddle.SDK
		err    error
	)
	switch strings.ToLower(cfg.PaddleEnvironment) {
	case "sandbox":
		client, err = paddle.NewSandbox(cfg.PaddleAPIKey, opts...)
	case "production", "":
		client, err = paddle.New(cfg.PaddleAPIKey, opts...)
	default:
		return nil, errors.Join(ErrMisconfigured, fmt.Errorf("invalid paddle environment %q", cfg.PaddleEnvironment))
	}
	if err != nil {
		return nil, errors.Join(ErrMisconfigured, err)
	}

	return &PaddleGateway{client: client}, nil
}

func (g *PaddleGateway) Name() string { return ProviderPaddle }

func (g *PaddleGateway) FindCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	res, err := g.client.ListCustomers(ctx, &paddle.ListCustomersRequest{Email: []string{email}})
	if err != nil {
		return nil, errors.Join(ErrProviderRequest, err)
	}

	var found *Customer
	err = res.Iter(ctx, func(c *paddle.Customer) (bool, error) {
		if c.ID == "" {
			return false, errors.Join(ErrMalformedResponse, errors.New("customer without id"))
		}
		found = &Customer{ID: c.ID, Email: c.Email}
		return false, nil
	})
	if err != nil {
		if errors.Is(err, ErrMalformedResponse) {
			return nil, err
		}
		return nil, errors.Join(ErrProviderRequest, err)
	}
	return found, nil
}

func (g *PaddleGateway) FindActiveSubscription(ctx context.Context, customerID string) (*Subscription, error) {
	res, err := g.client.ListSubscriptions(ctx, &paddle.ListSubscriptionsRequest{
		CustomerID: []string{customerID},
		Status:     []string{"active"},
	})
	if err != nil {
		return nil, errors.Join(ErrProviderRequest, err)
	}

	var found *Subscription
	err = res.Iter(ctx, func(s *paddle.Subscription) (bool, error) {
		if s.ID == "" {
			return false, errors.Join(ErrMalformedResponse, errors.New("subscription without id"))
		}
		found = &Subscription{ID: s.ID, CustomerID: customerID, Status: string(s.Status)}
		return false, nil
	})
	if err != nil {
		if errors.Is(err, ErrMalformedResponse) {
			return nil, err
		}
		return nil, errors.Join(ErrProviderRequest, err)
	}
	return found, nil
}
