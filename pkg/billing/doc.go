// Package billing looks up customers and active subscriptions at the
// payment provider.
//
// Gateway is the port used by the subscription verifier. StripeGateway talks
// to Stripe through stripe-go, PaddleGateway to Paddle Billing through
// paddle-go-sdk. NewGateway picks one from Config:
//
//	gw, err := billing.NewGateway(cfg)
//	if errors.Is(err, billing.ErrMisconfigured) {
//		// credentials are missing
//	}
//
// Both lookups return nil, nil when nothing matches so callers can tell an
// empty result from a provider failure.
package billing
