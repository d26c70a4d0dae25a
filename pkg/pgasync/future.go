package pgasync

import "context"

// Future is the completion handle for a dispatched closure.
//
// A Future resolves exactly once, to either the closure's value or its
// error. Await may be called from multiple goroutines and is safe to call
// repeatedly after resolution.
type Future[T any] struct {
	done     chan struct{}
	value    T
	err      error
	panicked any
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// resolvedFuture returns an already-completed future. Used by ModeInline,
// where the closure has finished before dispatch returns.
func resolvedFuture[T any](value T, err error) *Future[T] {
	f := newFuture[T]()
	f.resolve(value, err)
	return f
}

func (f *Future[T]) resolve(value T, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

func (f *Future[T]) resolvePanic(p any) {
	f.panicked = p
	close(f.done)
}

// Done returns a channel that is closed when the future resolves.
// Intended for select integration; read the result with Await afterwards.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future resolves or ctx is done.
//
// Context expiry abandons the wait and returns ctx.Err(); it does NOT
// cancel the dispatched work, which runs to completion in the background.
// If the dispatched closure panicked, Await re-raises the panic in the
// awaiting goroutine.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	// Prefer a ready result over a simultaneously-expired context.
	select {
	case <-f.done:
	default:
		select {
		case <-f.done:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}

	if f.panicked != nil {
		panic(f.panicked)
	}
	return f.value, f.err
}
