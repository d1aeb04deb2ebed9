package email

import (
	"log/slog"

	"github.com/dmitrymomot/formsaas/pkg/logger"
)

// NewSender returns a Postmark sender when credentials are configured and a
// DevSender otherwise.
func NewSender(cfg Config, log *slog.Logger, opts ...PostmarkOption) (EmailSender, error) {
	if log == nil {
		log = slog.Default()
	}
	if !cfg.PostmarkEnabled() {
		log.Warn("postmark is not configured, emails are written to disk",
			logger.Component("email"),
			slog.String("dir", cfg.DevDir),
		)
		return NewDevSender(cfg.DevDir), nil
	}
	return NewPostmarkClient(cfg, opts...)
}
