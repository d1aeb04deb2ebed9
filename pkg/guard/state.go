package guard

// State is the gate state.
type State string

const (
	StateLoading State = "loading"
	StateAllowed State = "allowed"
	StateBlocked State = "blocked"
)

// Render is what the protected view should show.
type Render string

const (
	RenderLoading  Render = "loading"
	RenderChildren Render = "children"
	RenderFallback Render = "fallback"
	RenderNothing  Render = "nothing"
)

// Decision is the outcome of one observation.
// RedirectTo is set only on the observation that fired the redirect.
type Decision struct {
	State      State
	Render     Render
	RedirectTo string
}

// Redirected reports whether this observation navigated away.
func (d Decision) Redirected() bool { return d.RedirectTo != "" }
