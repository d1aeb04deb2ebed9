// Package async provides small generic helpers for running a computation in its own goroutine
// and waiting for it under a time budget.
//
// A Future is started with Go and completes exactly once. Bounded races a computation against a
// timer and reports the winner as an Outcome, a sum of three cases:
//
//   - Ok: the computation finished in time and returned a value
//   - Failed: the computation finished in time and returned an error (Err is set)
//   - TimedOut: the budget elapsed first
//
// The losing computation is never left running with a live context: on timeout its context is
// cancelled, and Outcome.Settled exposes a channel that is closed once the goroutine has actually
// returned. Remote calls that honour the context stop early; calls that don't are simply ignored
// when they finish, and never block on a reader that has gone away.
//
// # Usage
//
//	import "github.com/dmitrymomot/formsaas/pkg/async"
//
//	out := async.Bounded(ctx, 3*time.Second, func(ctx context.Context) (*Customer, error) {
//		return gateway.FindCustomerByEmail(ctx, email)
//	})
//	switch {
//	case out.TimedOut:
//		// treat as empty result
//	case out.Err != nil:
//		return out.Err
//	default:
//		use(out.Value)
//	}
package async
