// Package sim provides in-memory accessory drivers for the simulator.
package sim

import (
	"sync"
	"time"

	"github.com/hap-protocol/hap-go/pkg/model"
)

// Point is one simulated device value. It serves the driver side of a
// characteristic binding: reads, acknowledged writes, and change reports.
type Point[T any] struct {
	mu      sync.Mutex
	value   T
	changed model.ChangeFunc[T]
	latency time.Duration
	failure error
	onWrite func(T)
}

// NewPoint creates a point holding v.
func NewPoint[T any](v T) *Point[T] {
	return &Point[T]{value: v}
}

// Value returns the current device value.
func (p *Point[T]) Value() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// SetLatency delays every read and write acknowledgement by d.
func (p *Point[T]) SetLatency(d time.Duration) {
	p.mu.Lock()
	p.latency = d
	p.mu.Unlock()
}

// SetFailure makes reads and writes fail with err until cleared with nil.
func (p *Point[T]) SetFailure(err error) {
	p.mu.Lock()
	p.failure = err
	p.mu.Unlock()
}

// Subscribed reports whether a change function is registered.
func (p *Point[T]) Subscribed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.changed != nil
}

// Get implements the binding's read function.
func (p *Point[T]) Get() *model.Future[T] {
	p.mu.Lock()
	v, err, latency := p.value, p.failure, p.latency
	p.mu.Unlock()

	return complete(latency, func(f *model.Future[T]) {
		if err != nil {
			f.Reject(err)
			return
		}
		f.Resolve(v)
	})
}

// Set implements the binding's write function. A successful write stores
// the value, runs the write hook and reports the change.
func (p *Point[T]) Set(v T) *model.Future[struct{}] {
	p.mu.Lock()
	err, latency := p.failure, p.latency
	p.mu.Unlock()

	return complete(latency, func(f *model.Future[struct{}]) {
		if err != nil {
			f.Reject(err)
			return
		}
		p.Emit(v)

		p.mu.Lock()
		hook := p.onWrite
		p.mu.Unlock()
		if hook != nil {
			hook(v)
		}
		f.Resolve(struct{}{})
	})
}

// Subscribe implements the binding's subscribe function.
func (p *Point[T]) Subscribe(fn model.ChangeFunc[T]) {
	p.mu.Lock()
	p.changed = fn
	p.mu.Unlock()
}

// Unsubscribe implements the binding's unsubscribe function.
func (p *Point[T]) Unsubscribe() {
	p.mu.Lock()
	p.changed = nil
	p.mu.Unlock()
}

// Emit stores a device-side change and reports it to the subscriber.
// The change function is called without holding the lock.
func (p *Point[T]) Emit(v T) {
	p.mu.Lock()
	p.value = v
	fn := p.changed
	p.mu.Unlock()

	if fn != nil {
		fn(v)
	}
}

// Binding returns a full read/write/notify binding.
func (p *Point[T]) Binding() model.Binding[T] {
	return model.Binding[T]{
		Get:         p.Get,
		Set:         p.Set,
		Subscribe:   p.Subscribe,
		Unsubscribe: p.Unsubscribe,
	}
}

// ReadBinding returns a read/notify binding.
func (p *Point[T]) ReadBinding() model.ReadBinding[T] {
	return model.ReadBinding[T]{
		Get:         p.Get,
		Subscribe:   p.Subscribe,
		Unsubscribe: p.Unsubscribe,
	}
}

func (p *Point[T]) setWriteHook(fn func(T)) {
	p.mu.Lock()
	p.onWrite = fn
	p.mu.Unlock()
}

// complete runs fn against a new future, immediately or after latency.
func complete[T any](latency time.Duration, fn func(*model.Future[T])) *model.Future[T] {
	f := model.NewFuture[T]()
	if latency <= 0 {
		fn(f)
		return f
	}
	time.AfterFunc(latency, func() { fn(f) })
	return f
}
