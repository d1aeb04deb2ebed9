package guard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/dmitrymomot/formsaas/pkg/logger"
	"github.com/dmitrymomot/formsaas/pkg/subscription"
)

// DefaultRedirectTo is where blocked users are sent.
const DefaultRedirectTo = "/assinatura"

// Guard is a re-entrant subscription gate. It is safe for concurrent use.
type Guard struct {
	redirectTo      string
	fallback        bool
	fallbackHandler http.Handler
	redirector      Redirector
	log             *slog.Logger

	mu           sync.Mutex
	state        State
	lastRedirect *inputKey
}

// Option configures a Guard.
type Option func(*Guard)

// WithRedirectTo sets the redirect target. It must be a local path.
func WithRedirectTo(path string) Option {
	return func(g *Guard) {
		if path = strings.TrimSpace(path); path != "" {
			g.redirectTo = path
		}
	}
}

// WithFallback marks the view as having fallback content.
func WithFallback() Option {
	return func(g *Guard) { g.fallback = true }
}

// WithFallbackHandler sets the handler Middleware serves as fallback content.
// It implies WithFallback.
func WithFallbackHandler(h http.Handler) Option {
	return func(g *Guard) {
		if h != nil {
			g.fallback = true
			g.fallbackHandler = h
		}
	}
}

// WithRedirector sets the navigator invoked when a redirect fires.
func WithRedirector(r Redirector) Option {
	return func(g *Guard) { g.redirector = r }
}

// WithLogger sets the logger. Nil keeps slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(g *Guard) {
		if l != nil {
			g.log = l
		}
	}
}

// New returns a guard in the loading state that redirects blocked users to
// DefaultRedirectTo unless WithRedirectTo says otherwise.
func New(opts ...Option) *Guard {
	g := &Guard{
		redirectTo: DefaultRedirectTo,
		state:      StateLoading,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With(logger.Component("guard"))
	return g
}

// State returns the current gate state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// RedirectTo returns the configured redirect target.
func (g *Guard) RedirectTo() string { return g.redirectTo }

// Observe feeds a subscription snapshot to the guard.
func (g *Guard) Observe(ctx context.Context, s subscription.State) Decision {
	g.mu.Lock()
	t := match(g, s)
	from := g.state
	g.state = t.to
	d := Decision{State: t.to, Render: t.render(g)}

	fire := false
	if t.redirect {
		key := keyOf(s)
		if g.lastRedirect == nil || *g.lastRedirect != key {
			g.lastRedirect = &key
			fire = true
		}
	} else {
		// leaving the redirect path re-arms it
		g.lastRedirect = nil
	}
	g.mu.Unlock()

	if from != t.to {
		g.log.DebugContext(ctx, "guard transition",
			slog.String("from", string(from)),
			slog.String("to", string(t.to)),
			logger.Event(t.name),
		)
	}

	if fire {
		d.RedirectTo = g.redirectTo
		if g.redirector != nil {
			if err := g.redirector.Redirect(ctx, g.redirectTo); err != nil {
				g.log.ErrorContext(ctx, "guard redirect failed",
					slog.String("redirect_to", g.redirectTo),
					logger.Error(errors.Join(ErrRedirectFailed, err)),
				)
			}
		}
	}
	return d
}

// Reset returns the guard to loading and re-arms the redirect.
func (g *Guard) Reset() {
	g.mu.Lock()
	g.state = StateLoading
	g.lastRedirect = nil
	g.mu.Unlock()
}

// inputKey is the part of a snapshot the redirect reacts to.
type inputKey struct {
	status   subscription.Status
	isActive bool
	err      string
}

func keyOf(s subscription.State) inputKey {
	k := inputKey{status: s.Status, isActive: s.IsActive}
	if s.Err != nil {
		k.err = s.Err.Error()
	}
	return k
}
