package handler

import (
	"net/http"
)

// HandlerFunc provides type-safe HTTP request handling with custom context support.
// C must implement the Context interface, R can be any request type.
type HandlerFunc[C Context, R any] func(ctx C, req R) Response

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind parses HTTP requests into typed values.
type Bind func(r *http.Request, v any) error

// ErrorHandler handles errors from binding or rendering.
type ErrorHandler[C Context] func(ctx C, err error)

// WrapOption configures the Wrap function.
type WrapOption[C Context, R any] func(*wrapConfig[C, R])

type wrapConfig[C Context, R any] struct {
	binders      []Bind
	errorHandler ErrorHandler[C]
}

// WithBinders sets request binders that are applied in order.
func WithBinders[C Context, R any](binders ...Bind) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		c.binders = append(c.binders, binders...)
	}
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler[C Context, R any](h ErrorHandler[C]) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// defaultErrorHandler answers with the JSON error envelope without logging.
func defaultErrorHandler[C Context](ctx C, err error) {
	if renderErr := JSONError(ClassifyError(err)).Render(ctx.ResponseWriter(), ctx.Request()); renderErr != nil {
		http.Error(ctx.ResponseWriter(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// Wrap converts a typed HandlerFunc to http.HandlerFunc.
//
//	r.Get("/api/subscription", handler.Wrap(status,
//		handler.WithErrorHandler[handler.Context, struct{}](errHandler),
//	))
func Wrap[C Context, R any](h HandlerFunc[C, R], opts ...WrapOption[C, R]) http.HandlerFunc {
	cfg := &wrapConfig[C, R]{errorHandler: defaultErrorHandler[C]}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, ok := NewContext(w, r).(C)
		if !ok {
			panic("handler: context type must be satisfied by NewContext")
		}

		var req R
		for _, bind := range cfg.binders {
			if err := bind(r, &req); err != nil {
				cfg.errorHandler(ctx, err)
				return
			}
		}

		response := h(ctx, req)
		if response == nil {
			cfg.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := response.Render(w, r); err != nil {
			cfg.errorHandler(ctx, err)
		}
	}
}
