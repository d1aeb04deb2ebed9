package billing

import (
	"fmt"
	"strings"
)

// NewGateway builds the gateway selected by cfg.Provider.
func NewGateway(cfg Config) (Gateway, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderStripe, "":
		var opts []StripeOption
		if cfg.StripeAPIURL != "" {
			opts = append(opts, WithStripeURL(cfg.StripeAPIURL))
		}
		gw, err := NewStripeGateway(cfg.StripeSecretKey, opts...)
		if err != nil {
			return nil, err
		}
		return gw, nil
	case ProviderPaddle:
		gw, err := NewPaddleGateway(cfg)
		if err != nil {
			return nil, err
		}
		return gw, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
