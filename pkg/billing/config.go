package billing

const (
	ProviderStripe = "stripe"
	ProviderPaddle = "paddle"
)

// Config selects and configures the billing provider. Provider is "stripe"
// or "paddle"; only the selected provider's fields are read.
type Config struct {
	Provider string `env:"BILLING_PROVIDER" envDefault:"stripe"`

	StripeSecretKey string `env:"STRIPE_SECRET_KEY"`
	StripeAPIURL    string `env:"STRIPE_API_URL"` // overrides https://api.stripe.com, used by tests and proxies

	PaddleAPIKey      string `env:"PADDLE_API_KEY"`
	PaddleEnvironment string `env:"PADDLE_ENVIRONMENT" envDefault:"production"`
	PaddleAPIURL      string `env:"PADDLE_API_URL"`
}
