package subscription

import (
	"sync"
)

// Callback receives the latest value of a subscribed characteristic.
type Callback[T any] func(value T)

// PanicHandler is called with the recovered value when a callback panics.
type PanicHandler func(recovered any)

// Slot is a single-callback, coalescing notification slot.
// The zero value is not usable; create slots with NewSlot.
type Slot[T any] struct {
	mu sync.Mutex

	// cb is the active callback (nil when unsubscribed).
	cb Callback[T]

	// latest holds the most recent undelivered value.
	latest T

	// pending is true when latest has not been delivered yet.
	pending bool

	// delivering is true while a goroutine runs the delivery loop.
	delivering bool

	onPanic PanicHandler
}

// NewSlot creates an empty slot. onPanic may be nil.
func NewSlot[T any](onPanic PanicHandler) *Slot[T] {
	return &Slot[T]{onPanic: onPanic}
}

// Set registers cb, replacing any active callback.
// Returns true if a previous callback was replaced.
func (s *Slot[T]) Set(cb Callback[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := s.cb != nil
	s.cb = cb
	return replaced
}

// Clear removes the active callback and drops any undelivered value.
// Returns true if a callback was active. Calling Clear on an empty slot
// is a no-op.
func (s *Slot[T]) Clear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	had := s.cb != nil
	s.cb = nil
	s.pending = false
	var zero T
	s.latest = zero
	return had
}

// Active returns whether a callback is registered.
func (s *Slot[T]) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cb != nil
}

// Notify records a new value and delivers it to the active callback.
//
// If another goroutine is already delivering, Notify only records the value
// and returns immediately; the delivering goroutine picks it up once its
// current callback returns. Returns the number of callback invocations made
// by this call.
func (s *Slot[T]) Notify(value T) int {
	s.mu.Lock()
	if s.cb == nil {
		s.mu.Unlock()
		return 0
	}

	s.latest = value
	s.pending = true
	if s.delivering {
		s.mu.Unlock()
		return 0
	}
	s.delivering = true

	delivered := 0
	for s.pending && s.cb != nil {
		cb, v := s.cb, s.latest
		s.pending = false
		var zero T
		s.latest = zero

		s.mu.Unlock()
		s.invoke(cb, v)
		delivered++
		s.mu.Lock()
	}

	s.delivering = false
	s.mu.Unlock()
	return delivered
}

// invoke runs cb, recovering from panics.
func (s *Slot[T]) invoke(cb Callback[T], v T) {
	defer func() {
		if r := recover(); r != nil && s.onPanic != nil {
			s.onPanic(r)
		}
	}()
	cb(v)
}
