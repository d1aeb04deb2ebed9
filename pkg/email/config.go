package email

// Config holds email service configuration.
// Postmark tokens are optional: without them the dev sender writes messages
// to DevDir instead of sending them.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"no-reply@formsaas.local"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"suporte@formsaas.local"`
	DevDir               string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

// PostmarkEnabled reports whether Postmark credentials are configured.
func (c Config) PostmarkEnabled() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != ""
}
