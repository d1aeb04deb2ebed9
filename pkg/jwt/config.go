package jwt

// Config holds the Supabase project settings used to verify access tokens.
type Config struct {
	Secret   string `env:"SUPABASE_JWT_SECRET"`
	Audience string `env:"SUPABASE_JWT_AUDIENCE" envDefault:"authenticated"`
}

// Enabled reports whether a signing secret is configured.
func (c Config) Enabled() bool { return c.Secret != "" }
