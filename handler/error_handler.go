package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/formsaas/pkg/binder"
	"github.com/dmitrymomot/formsaas/pkg/logger"
)

// ClassifyError maps binder failures onto HTTP errors so they render as
// 4xx instead of 500. Other errors are returned unchanged.
func ClassifyError(err error) error {
	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		return errors.Join(ErrUnsupportedMediaType, err)
	case errors.Is(err, binder.ErrBodyTooLarge):
		return errors.Join(ErrRequestEntityTooLarge, err)
	case errors.Is(err, binder.ErrFailedToParseJSON), errors.Is(err, binder.ErrFailedToParsePath):
		return errors.Join(ErrBadRequest, err)
	}
	return err
}

// StatusCode returns the HTTP status err would be rendered with.
func StatusCode(err error) int {
	status, _ := errorToDetail(ClassifyError(err))
	return status
}

func logLevel(status int) slog.Level {
	if status < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// NewErrorHandler returns an ErrorHandler that logs the error with request
// details and answers with the JSON error envelope.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("error_handler"))

	return func(ctx Context, err error) {
		err = ClassifyError(err)
		r := ctx.Request()
		status := StatusCode(err)

		log.LogAttrs(r.Context(), logLevel(status), "request error",
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		if renderErr := JSONError(err).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response", logger.Error(renderErr))
		}
	}
}
