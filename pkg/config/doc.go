// Package config loads typed application configuration from environment
// variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11. The
// default .env file is read once, then each configuration struct is parsed
// from the process environment and cached by type, so repeated calls to
// Load for the same type are served from memory.
//
// A struct that implements Validator is validated right after parsing. A
// failing validation is not cached:
//
//	type BillingConfig struct {
//		Provider  string `env:"BILLING_PROVIDER" envDefault:"stripe"`
//		StripeKey string `env:"STRIPE_SECRET_KEY"`
//	}
//
//	func (c BillingConfig) Validate() error {
//		if c.Provider == "stripe" && c.StripeKey == "" {
//			return errors.New("STRIPE_SECRET_KEY is required")
//		}
//		return nil
//	}
//
//	var cfg BillingConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Tests that change the environment between cases should call ResetCache.
package config
