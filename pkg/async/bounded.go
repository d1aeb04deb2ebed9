package async

import (
	"context"
	"time"
)

// Outcome is the result of a bounded wait.
// Exactly one of the following holds: TimedOut is true, Err is non-nil, or the call succeeded.
type Outcome[T any] struct {
	Value    T
	Err      error
	TimedOut bool

	settled <-chan struct{}
}

// Ok reports whether the computation finished within the budget without error.
func (o Outcome[T]) Ok() bool {
	return !o.TimedOut && o.Err == nil
}

// Result returns the value and error, mapping a timeout to ErrTimedOut.
func (o Outcome[T]) Result() (T, error) {
	if o.TimedOut {
		var zero T
		return zero, ErrTimedOut
	}
	return o.Value, o.Err
}

// Settled returns a channel closed once the underlying goroutine has returned.
// For outcomes that did not time out it is already closed.
func (o Outcome[T]) Settled() <-chan struct{} {
	if o.settled == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return o.settled
}

// Bounded runs fn and waits at most budget for it to finish.
// On timeout the computation's context is cancelled and Outcome.TimedOut is set.
// If ctx ends first, Outcome.Err carries ctx.Err().
// A non-positive budget disables the timer.
func Bounded[T any](ctx context.Context, budget time.Duration, fn func(context.Context) (T, error)) Outcome[T] {
	f := Go(ctx, fn)

	var timeout <-chan time.Time
	if budget > 0 {
		timer := time.NewTimer(budget)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-f.Done():
		v, err := f.Await()
		return Outcome[T]{Value: v, Err: err, settled: f.Done()}
	case <-timeout:
		// A result that landed together with the timer still wins.
		if f.IsComplete() {
			v, err := f.Await()
			return Outcome[T]{Value: v, Err: err, settled: f.Done()}
		}
		f.Cancel()
		return Outcome[T]{TimedOut: true, settled: f.Done()}
	case <-ctx.Done():
		f.Cancel()
		return Outcome[T]{Err: ctx.Err(), settled: f.Done()}
	}
}
