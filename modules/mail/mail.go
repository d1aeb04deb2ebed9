package mail

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formsaas/handler"
	"github.com/dmitrymomot/formsaas/pkg/binder"
	"github.com/dmitrymomot/formsaas/pkg/email"
	"github.com/dmitrymomot/formsaas/pkg/logger"
)

// SendRequest is the body of POST /send-email. The caller supplies the
// rendered HTML.
type SendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Tag     string `json:"tag,omitempty"`
}

// SendResponse acknowledges an accepted message.
type SendResponse struct {
	Sent bool `json:"sent"`
}

type Service struct {
	sender       email.EmailSender
	log          *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewService(sender email.EmailSender, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("mail.http"))
	return &Service{
		sender:       sender,
		log:          log,
		errorHandler: handler.NewErrorHandler(log),
	}
}

func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/", handler.Wrap(s.send,
		handler.WithBinders[handler.Context, SendRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, SendRequest](s.errorHandler),
	))

	return r
}

func (s *Service) send(ctx handler.Context, req SendRequest) handler.Response {
	params := email.SendEmailParams{
		SendTo:   strings.TrimSpace(req.To),
		Subject:  strings.TrimSpace(req.Subject),
		BodyHTML: req.HTML,
		Tag:      strings.TrimSpace(req.Tag),
	}
	if err := params.Validate(); err != nil {
		return handler.JSONError(errors.Join(handler.ErrBadRequest.WithKey("invalid_email_params"), err))
	}

	if err := s.sender.SendEmail(ctx, params); err != nil {
		s.log.ErrorContext(ctx, "failed to send email",
			logger.Email(params.SendTo),
			slog.String("tag", params.Tag),
			logger.Error(err),
		)
		return handler.JSONError(handler.ErrInternalServerError.WithKey("email_not_sent"))
	}

	return handler.JSON(SendResponse{Sent: true}, handler.WithJSONStatus(http.StatusAccepted))
}
