package guard

import (
	"net/http"

	"github.com/dmitrymomot/formsaas/pkg/jwt"
	"github.com/dmitrymomot/formsaas/pkg/subscription"
)

// Middleware protects server routes. The user is read from the verified
// token in the request context; anonymous requests are blocked.
// Options are those of New; WithRedirector is ignored since every request
// gets a redirector bound to its response.
func Middleware(q *subscription.Query, opts ...Option) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			rd := &httpRedirector{w: w, r: r}
			g := New(append(opts[:len(opts):len(opts)], WithRedirector(rd))...)

			state := q.Use(jwt.UserID(ctx)).Start(ctx)
			d := g.Observe(ctx, state)

			switch {
			case d.Render == RenderChildren:
				next.ServeHTTP(w, r)
			case rd.written:
			case d.Render == RenderFallback && g.fallbackHandler != nil:
				g.fallbackHandler.ServeHTTP(w, r)
			default:
				w.WriteHeader(http.StatusForbidden)
			}
		})
	}
}
