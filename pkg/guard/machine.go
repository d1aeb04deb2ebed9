package guard

import "github.com/dmitrymomot/formsaas/pkg/subscription"

// predicate decides whether a transition applies to a snapshot.
type predicate func(g *Guard, s subscription.State) bool

// transition maps a snapshot onto a target state. The first transition whose
// predicates all pass wins, so order encodes priority.
type transition struct {
	name     string
	to       State
	when     []predicate
	render   func(g *Guard) Render
	redirect bool
}

func isLoading(_ *Guard, s subscription.State) bool { return s.Status == subscription.StatusLoading }
func isActive(_ *Guard, s subscription.State) bool  { return s.IsActive }
func hasError(_ *Guard, s subscription.State) bool {
	return s.Status == subscription.StatusError || s.Err != nil
}
func hasFallback(g *Guard, _ subscription.State) bool { return g.fallback }

func render(r Render) func(*Guard) Render {
	return func(*Guard) Render { return r }
}

func fallbackOrNothing(g *Guard) Render {
	if g.fallback {
		return RenderFallback
	}
	return RenderNothing
}

// transitions apply from any state; the guard reacts to every update.
var transitions = []transition{
	{name: "wait", to: StateLoading, when: []predicate{isLoading}, render: render(RenderLoading)},
	{name: "allow", to: StateAllowed, when: []predicate{isActive}, render: render(RenderChildren)},
	{name: "fallback_on_error", to: StateBlocked, when: []predicate{hasError, hasFallback}, render: render(RenderFallback)},
	{name: "block", to: StateBlocked, render: fallbackOrNothing, redirect: true},
}

// match panics if no transition applies; the table ends with an
// unconditional entry.
func match(g *Guard, s subscription.State) transition {
	for _, t := range transitions {
		ok := true
		for _, p := range t.when {
			if !p(g, s) {
				ok = false
				break
			}
		}
		if ok {
			return t
		}
	}
	panic("guard: transition table has no unconditional last entry")
}
