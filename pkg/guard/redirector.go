package guard

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrymomot/formsaas/handler"
)

// Redirector navigates to a path.
type Redirector interface {
	Redirect(ctx context.Context, to string) error
}

// RedirectorFunc adapts a function to Redirector.
type RedirectorFunc func(ctx context.Context, to string) error

func (f RedirectorFunc) Redirect(ctx context.Context, to string) error { return f(ctx, to) }

// httpRedirector answers the bound request with 303 See Other.
type httpRedirector struct {
	w       http.ResponseWriter
	r       *http.Request
	written bool
}

func (h *httpRedirector) Redirect(_ context.Context, to string) error {
	if !isLocalPath(to) {
		return ErrInvalidRedirect
	}
	if err := handler.Redirect(to).Render(h.w, h.r); err != nil {
		return err
	}
	h.written = true
	return nil
}

// isLocalPath rejects absolute and protocol-relative URLs.
func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "/\\")
}
