package model

import (
	"context"
	"errors"
	"sync"
)

// errRejectedWithoutCause is used when a future is rejected with a nil error.
var errRejectedWithoutCause = errors.New("rejected without cause")

// Future is the asynchronous result of a getter or setter.
//
// A Future is completed exactly once, by Resolve or Reject, from whatever
// goroutine the driver uses. Continuations registered with OnComplete run on
// the completing goroutine, so the model needs no goroutines of its own.
type Future[T any] struct {
	mu        sync.Mutex
	done      chan struct{}
	completed bool
	value     T
	err       error
	conts     []func(T, error)
}

// NewFuture creates a pending future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns a future already completed with v.
func Resolved[T any](v T) *Future[T] {
	f := NewFuture[T]()
	f.Resolve(v)
	return f
}

// Failed returns a future already completed with err.
func Failed[T any](err error) *Future[T] {
	f := NewFuture[T]()
	f.Reject(err)
	return f
}

// Go runs fn on a new goroutine and returns a future for its result.
// Drivers without an execution context of their own can use it to wrap
// blocking device I/O.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := NewFuture[T]()
	go func() {
		v, err := fn()
		f.complete(v, err)
	}()
	return f
}

// Resolve completes the future with v. Returns false if already completed.
func (f *Future[T]) Resolve(v T) bool {
	return f.complete(v, nil)
}

// Reject completes the future with err. Returns false if already completed.
// A nil err is replaced by a generic rejection error.
func (f *Future[T]) Reject(err error) bool {
	if err == nil {
		err = errRejectedWithoutCause
	}
	var zero T
	return f.complete(zero, err)
}

func (f *Future[T]) complete(v T, err error) bool {
	f.mu.Lock()
	if f.completed {
		f.mu.Unlock()
		return false
	}
	f.completed = true
	f.value = v
	f.err = err
	conts := f.conts
	f.conts = nil
	close(f.done)
	f.mu.Unlock()

	for _, fn := range conts {
		fn(v, err)
	}
	return true
}

// Done returns a channel that is closed when the future completes.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Result returns the outcome and whether the future has completed.
func (f *Future[T]) Result() (T, error, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.completed {
		var zero T
		return zero, nil, false
	}
	return f.value, f.err, true
}

// OnComplete registers fn to run when the future completes. If the future
// has already completed, fn runs immediately on the calling goroutine.
func (f *Future[T]) OnComplete(fn func(T, error)) {
	f.mu.Lock()
	if !f.completed {
		f.conts = append(f.conts, fn)
		f.mu.Unlock()
		return
	}
	v, err := f.value, f.err
	f.mu.Unlock()
	fn(v, err)
}

// Await blocks until the future completes or ctx is done.
// On context expiry the context's error is returned; the future itself is
// unaffected and may still complete later.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then returns a future completed with fn applied to f's outcome.
// fn runs on the goroutine that completes f.
func Then[T, U any](f *Future[T], fn func(T, error) (U, error)) *Future[U] {
	out := NewFuture[U]()
	f.OnComplete(func(v T, err error) {
		u, err := fn(v, err)
		out.complete(u, err)
	})
	return out
}
