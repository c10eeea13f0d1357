package model

import (
	"fmt"
)

// ChangeFunc is handed to a driver's subscribe function. The driver calls it
// with the new value whenever the underlying state changes.
type ChangeFunc[T any] func(value T)

// Binding holds the driver functions behind one characteristic instance.
// Get is required. Set is optional. Subscribe and Unsubscribe are optional
// but must be given together.
type Binding[T any] struct {
	// Get returns the current value.
	Get func() *Future[T]

	// Set writes a new value; the future resolves when the driver
	// acknowledges the write.
	Set func(value T) *Future[struct{}]

	// Subscribe registers the change function with the driver. The driver
	// invokes it from its own goroutine when the value changes.
	Subscribe func(changed ChangeFunc[T])

	// Unsubscribe detaches the change function from the driver.
	Unsubscribe func()
}

// ReadBinding is the binding of a characteristic kind that cannot be written.
type ReadBinding[T any] struct {
	Get         func() *Future[T]
	Subscribe   func(changed ChangeFunc[T])
	Unsubscribe func()
}

// Binding converts b into a Binding without a setter.
func (b ReadBinding[T]) Binding() Binding[T] {
	return Binding[T]{
		Get:         b.Get,
		Subscribe:   b.Subscribe,
		Unsubscribe: b.Unsubscribe,
	}
}

// Access derives the access flags from the functions present.
func (b Binding[T]) Access() Access {
	var a Access
	if b.Get != nil {
		a |= AccessRead
	}
	if b.Set != nil {
		a |= AccessWrite
	}
	if b.Subscribe != nil && b.Unsubscribe != nil {
		a |= AccessNotify
	}
	return a
}

// check validates the binding shape.
func (b Binding[T]) check() error {
	if b.Get == nil {
		return fmt.Errorf("%w: getter", ErrMissingBinding)
	}
	if (b.Subscribe == nil) != (b.Unsubscribe == nil) {
		return fmt.Errorf("%w: subscribe and unsubscribe must be given together", ErrMissingBinding)
	}
	return nil
}

// SyncGetter adapts a synchronous getter into a Binding getter.
func SyncGetter[T any](fn func() (T, error)) func() *Future[T] {
	return func() *Future[T] {
		v, err := fn()
		if err != nil {
			return Failed[T](err)
		}
		return Resolved(v)
	}
}

// SyncSetter adapts a synchronous setter into a Binding setter.
func SyncSetter[T any](fn func(T) error) func(T) *Future[struct{}] {
	return func(v T) *Future[struct{}] {
		if err := fn(v); err != nil {
			return Failed[struct{}](err)
		}
		return Resolved(struct{}{})
	}
}
