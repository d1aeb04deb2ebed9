// Package guard gates protected views on the subscription state.
//
// A Guard is a three-state machine (loading, allowed, blocked) fed with
// subscription.State snapshots. Every Observe call re-evaluates the
// transition table and returns a Decision describing what to render and
// whether to navigate away. Redirects fire once per distinct input, so a
// guard observing the same blocked snapshot repeatedly redirects only once.
//
// When a fallback is configured and the snapshot carries an error, the
// fallback is rendered instead of redirecting.
//
// Middleware adapts the guard to server routes: it resolves the user from the
// request context, loads the subscription state and either calls the next
// handler, serves the fallback, or answers 303 See Other.
package guard
