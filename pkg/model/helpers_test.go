package model

import (
	"sync"

	"github.com/hap-protocol/hap-go/pkg/log"
)

// fakeDriver is an in-memory device backing a characteristic in tests.
type fakeDriver[T any] struct {
	mu      sync.Mutex
	value   T
	getErr  error
	setErr  error
	writes  []T
	changed ChangeFunc[T]
	subs    int
	unsubs  int
}

func (d *fakeDriver[T]) get() (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value, d.getErr
}

func (d *fakeDriver[T]) set(v T) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.setErr != nil {
		return d.setErr
	}
	d.value = v
	d.writes = append(d.writes, v)
	return nil
}

func (d *fakeDriver[T]) subscribe(fn ChangeFunc[T]) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.changed = fn
	d.subs++
}

func (d *fakeDriver[T]) unsubscribe() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.changed = nil
	d.unsubs++
}

// emit simulates a device-side state change.
func (d *fakeDriver[T]) emit(v T) {
	d.mu.Lock()
	d.value = v
	fn := d.changed
	d.mu.Unlock()
	if fn != nil {
		fn(v)
	}
}

func (d *fakeDriver[T]) counts() (subs, unsubs int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.subs, d.unsubs
}

func (d *fakeDriver[T]) fullBinding() Binding[T] {
	return Binding[T]{
		Get:         SyncGetter(d.get),
		Set:         SyncSetter(d.set),
		Subscribe:   d.subscribe,
		Unsubscribe: d.unsubscribe,
	}
}

func (d *fakeDriver[T]) readBinding() ReadBinding[T] {
	return ReadBinding[T]{
		Get:         SyncGetter(d.get),
		Subscribe:   d.subscribe,
		Unsubscribe: d.unsubscribe,
	}
}

// recordingLogger captures events.
type recordingLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *recordingLogger) Log(event log.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingLogger) ops() []log.Operation {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make([]log.Operation, len(r.events))
	for i, e := range r.events {
		ops[i] = e.Operation
	}
	return ops
}

func (r *recordingLogger) last() log.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

var (
	levelID = MustIdentity("00000093-0000-1000-8000-0026BB765291", "Carbon Dioxide Level")
	speedID = MustIdentity("00000029-0000-1000-8000-0026BB765291", "Rotation Speed")
	fanID   = MustIdentity("000000AF-0000-1000-8000-0026BB765291", "Current Fan State")
)
