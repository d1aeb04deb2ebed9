package async

import (
	"context"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
	cancel context.CancelFunc
}

// Go runs fn in a new goroutine with a cancellable child of ctx and returns its Future.
// The child context is released as soon as fn returns.
func Go[U any](ctx context.Context, fn func(context.Context) (U, error)) *Future[U] {
	ctx, cancel := context.WithCancel(ctx)
	f := &Future[U]{
		done:   make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		defer close(f.done)
		defer cancel()

		// Skip the call entirely when the caller is already gone.
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.result, f.err = fn(ctx)
	}()

	return f
}

// Await blocks until the computation completes and returns its result.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// Done returns a channel closed when the computation has returned.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// Cancel cancels the computation's context. It does not wait for it to return.
func (f *Future[U]) Cancel() {
	f.cancel()
}

// IsComplete reports whether the computation has returned, without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
