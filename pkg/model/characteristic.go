package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hap-protocol/hap-go/pkg/log"
	"github.com/hap-protocol/hap-go/pkg/subscription"
)

// errNoResult is returned when a driver function returns a nil future.
var errNoResult = errors.New("driver returned no result")

// AnyCharacteristic is the type-erased view of a characteristic used by
// services and by the transport layer.
type AnyCharacteristic interface {
	// Identity returns the kind-stable type tag.
	Identity() Identity

	// Format returns the value shape and constraints.
	Format() Format

	// Access returns the access flags derived from the binding.
	Access() Access

	// ReadValue reads the current value, waiting at most until ctx is done.
	ReadValue(ctx context.Context) (any, error)

	// WriteValue writes v, waiting at most until ctx is done.
	WriteValue(ctx context.Context, v any) error

	// SubscribeAny registers cb for change notifications, replacing any
	// active callback.
	SubscribeAny(cb func(value any)) error

	// Unsubscribe clears the change callback. It is idempotent.
	Unsubscribe()

	// Info returns a description for discovery.
	Info() *CharacteristicInfo
}

// Characteristic is a typed value cell bound to driver functions.
//
// Identity and format are fixed at construction. The binding is immutable,
// so reads and writes need no lock; only the callback slot and the driver
// registration state are guarded, each by its own mutex. Driver subscribe
// and unsubscribe calls are serialized per characteristic.
type Characteristic[T any] struct {
	identity Identity
	format   Format
	access   Access
	binding  Binding[T]
	validate func(T) error

	slot *subscription.Slot[T]

	// Driver registration. want is what the callers asked for, attached is
	// what the driver has. Only the goroutine holding busy calls the driver.
	regMu      sync.Mutex
	regDone    *sync.Cond
	want       bool
	attached   bool
	busy       bool
	delivering atomic.Int32 // callbacks running on any goroutine

	logger *slog.Logger
	events log.Logger
}

// NewCharacteristic creates a characteristic of the given kind bound to the
// driver functions in binding. Construction fails with ErrMissingBinding if
// the getter is missing or only half of the subscribe pair is given, and with
// ErrInvalidDefinition if the format is inconsistent or does not fit T.
func NewCharacteristic[T any](identity Identity, format Format, binding Binding[T], opts ...Option) (*Characteristic[T], error) {
	return newCharacteristic(identity, format, binding, nil, opts)
}

func newCharacteristic[T any](identity Identity, format Format, binding Binding[T], validate func(T) error, opts []Option) (*Characteristic[T], error) {
	if err := format.Check(); err != nil {
		return nil, fmt.Errorf("%s: %w", identity.Name, err)
	}
	if err := checkValueType[T](format); err != nil {
		return nil, fmt.Errorf("%s: %w", identity.Name, err)
	}
	if err := binding.check(); err != nil {
		return nil, fmt.Errorf("%s: %w", identity.Name, err)
	}

	o := newOptions(opts)
	c := &Characteristic[T]{
		identity: identity,
		format:   format,
		access:   binding.Access(),
		binding:  binding,
		validate: validate,
		logger:   o.logger,
		events:   o.events,
	}
	if c.validate == nil {
		c.validate = func(v T) error { return format.Validate(v) }
	}
	c.slot = subscription.NewSlot[T](c.onCallbackPanic)
	c.regDone = sync.NewCond(&c.regMu)
	return c, nil
}

// checkValueType verifies that T can carry values of the given format kind.
func checkValueType[T any](format Format) error {
	t := reflect.TypeOf((*T)(nil)).Elem()
	ok := false
	switch format.Kind {
	case FormatBool:
		ok = t.Kind() == reflect.Bool
	case FormatString:
		ok = t.Kind() == reflect.String
	case FormatInt, FormatEnum:
		ok = isNumericKind(t.Kind()) && t.Kind() != reflect.Float32 && t.Kind() != reflect.Float64
	case FormatFloat:
		ok = isNumericKind(t.Kind())
	}
	if !ok {
		return fmt.Errorf("%w: %s format cannot hold %s", ErrInvalidDefinition, format.Kind, t)
	}
	return nil
}

// Identity returns the kind-stable type tag.
func (c *Characteristic[T]) Identity() Identity {
	return c.identity
}

// Format returns the value shape and constraints.
func (c *Characteristic[T]) Format() Format {
	return c.format
}

// Access returns the access flags derived from the binding.
func (c *Characteristic[T]) Access() Access {
	return c.access
}

// GetValue asks the driver for the current value.
// The result fails with ErrValueUnavailable if the getter rejects.
func (c *Characteristic[T]) GetValue() *Future[T] {
	start := time.Now()

	f, err := callDriver(c.binding.Get)
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrValueUnavailable, c.identity.Name, err)
		c.emit(log.OperationRead, nil, err, start)
		return Failed[T](err)
	}

	return Then(f, func(v T, err error) (T, error) {
		if err != nil {
			err = fmt.Errorf("%w: %s: %w", ErrValueUnavailable, c.identity.Name, err)
			c.emit(log.OperationRead, nil, err, start)
			var zero T
			return zero, err
		}
		c.emit(log.OperationRead, v, nil, start)
		return v, nil
	})
}

// Value reads the current value, waiting at most until ctx is done.
// Context expiry is reported as ErrValueUnavailable.
func (c *Characteristic[T]) Value(ctx context.Context) (T, error) {
	v, err := c.GetValue().Await(ctx)
	if err != nil && !errors.Is(err, ErrValueUnavailable) {
		return v, fmt.Errorf("%w: %s: %w", ErrValueUnavailable, c.identity.Name, err)
	}
	return v, err
}

// SetValue validates v and hands it to the driver's setter.
// The result fails with ErrInvalidValue if v is outside the domain and with
// ErrNotWritable if no setter is bound. Domain validation comes first.
func (c *Characteristic[T]) SetValue(v T) *Future[struct{}] {
	start := time.Now()

	if err := c.validate(v); err != nil {
		err = fmt.Errorf("%s: %w", c.identity.Name, err)
		c.emit(log.OperationWrite, v, err, start)
		return Failed[struct{}](err)
	}
	if c.binding.Set == nil {
		err := fmt.Errorf("%w: %s", ErrNotWritable, c.identity.Name)
		c.emit(log.OperationWrite, v, err, start)
		return Failed[struct{}](err)
	}

	f, err := callDriver(func() *Future[struct{}] { return c.binding.Set(v) })
	if err != nil {
		err = fmt.Errorf("%s: %w", c.identity.Name, err)
		c.emit(log.OperationWrite, v, err, start)
		return Failed[struct{}](err)
	}

	return Then(f, func(_ struct{}, err error) (struct{}, error) {
		if err != nil {
			err = fmt.Errorf("%s: %w", c.identity.Name, err)
		}
		c.emit(log.OperationWrite, v, err, start)
		return struct{}{}, err
	})
}

// Set writes v, waiting at most until ctx is done.
func (c *Characteristic[T]) Set(ctx context.Context, v T) error {
	_, err := c.SetValue(v).Await(ctx)
	if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return fmt.Errorf("%s: %w", c.identity.Name, err)
	}
	return err
}

// Subscribe registers cb for change notifications. A second call replaces the
// active callback; once Subscribe returns, the previous callback is not
// invoked again. Fails with ErrNotObservable if no subscribe pair is bound.
// A nil cb is equivalent to Unsubscribe.
func (c *Characteristic[T]) Subscribe(cb func(value T)) error {
	if !c.access.CanNotify() {
		err := fmt.Errorf("%w: %s", ErrNotObservable, c.identity.Name)
		c.emit(log.OperationSubscribe, nil, err, time.Now())
		return err
	}
	if cb == nil {
		c.Unsubscribe()
		return nil
	}

	var replaced bool
	c.setRegistration(true, func() {
		replaced = c.slot.Set(func(v T) {
			c.delivering.Add(1)
			defer c.delivering.Add(-1)
			c.emit(log.OperationNotify, v, nil, time.Time{})
			cb(v)
		})
	})

	c.events.Log(log.Event{
		Timestamp:      time.Now(),
		Operation:      log.OperationSubscribe,
		Characteristic: c.identity.Name,
		Type:           c.identity.Type.String(),
		Replaced:       replaced,
	})
	return nil
}

// Unsubscribe clears the change callback and detaches from the driver.
// Calling it without an active subscription is a no-op. It is safe to call
// from within the callback itself.
func (c *Characteristic[T]) Unsubscribe() {
	if !c.access.CanNotify() {
		return
	}

	var cleared bool
	c.setRegistration(false, func() {
		cleared = c.slot.Clear()
	})

	if cleared {
		c.emit(log.OperationUnsubscribe, nil, nil, time.Time{})
	}
}

// setRegistration applies a slot change together with whether the driver
// should hold the change function, then brings the driver in line. The
// slot and the wanted state change under regMu, so the last caller decides
// both. Driver calls run outside regMu,
// one at a time; a caller finding another goroutine mid-call waits for it
// and then reconciles, so the last recorded wish always reaches the driver.
// Calls made while a callback runs do not wait: the callback may be running
// inside a driver call, and the goroutine holding busy picks up the change.
func (c *Characteristic[T]) setRegistration(want bool, apply func()) {
	wait := c.delivering.Load() == 0

	c.regMu.Lock()
	defer c.regMu.Unlock()
	apply()
	c.want = want
	for {
		if c.busy {
			if !wait {
				return
			}
			c.regDone.Wait()
			continue
		}
		if c.attached == c.want {
			return
		}

		target := c.want
		c.busy = true
		c.regMu.Unlock()
		c.updateDriver(target)
		c.regMu.Lock()
		c.attached = target
		c.busy = false
		c.regDone.Broadcast()
	}
}

// updateDriver hands the change function to the driver or takes it back.
// A panicking driver is logged so the registration state stays usable.
func (c *Characteristic[T]) updateDriver(attach bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("driver subscription call panicked",
				"characteristic", c.identity.Name,
				"attach", attach,
				"panic", fmt.Sprint(r))
		}
	}()
	if attach {
		c.binding.Subscribe(c.changed)
	} else {
		c.binding.Unsubscribe()
	}
}

// Subscribed returns whether a change callback is active.
func (c *Characteristic[T]) Subscribed() bool {
	return c.slot.Active()
}

// changed is the ChangeFunc handed to the driver.
func (c *Characteristic[T]) changed(v T) {
	c.slot.Notify(v)
}

func (c *Characteristic[T]) onCallbackPanic(recovered any) {
	c.logger.Warn("notification callback panicked",
		"characteristic", c.identity.Name,
		"type", c.identity.ShortType(),
		"panic", fmt.Sprint(recovered))
	c.emit(log.OperationNotify, nil, fmt.Errorf("callback panicked: %v", recovered), time.Time{})
}

// ReadValue implements AnyCharacteristic.
func (c *Characteristic[T]) ReadValue(ctx context.Context) (any, error) {
	v, err := c.Value(ctx)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// WriteValue implements AnyCharacteristic. Numeric values are converted to
// T when the conversion is lossless.
func (c *Characteristic[T]) WriteValue(ctx context.Context, v any) error {
	t, ok := convertValue[T](v)
	if !ok {
		err := fmt.Errorf("%s: %w: cannot use %T as %s", c.identity.Name, ErrInvalidValue, v, c.format.Kind)
		c.emit(log.OperationWrite, v, err, time.Now())
		return err
	}
	return c.Set(ctx, t)
}

// SubscribeAny implements AnyCharacteristic.
func (c *Characteristic[T]) SubscribeAny(cb func(value any)) error {
	if cb == nil {
		return c.Subscribe(nil)
	}
	return c.Subscribe(func(v T) { cb(v) })
}

// Info returns a description of the characteristic for discovery.
func (c *Characteristic[T]) Info() *CharacteristicInfo {
	return newCharacteristicInfo(c.identity, c.format, c.access)
}

// emit records an event. A zero start omits the duration.
func (c *Characteristic[T]) emit(op log.Operation, value any, err error, start time.Time) {
	event := log.Event{
		Timestamp:      time.Now(),
		Operation:      op,
		Characteristic: c.identity.Name,
		Type:           c.identity.Type.String(),
		Value:          value,
	}
	if !start.IsZero() {
		event.Duration = event.Timestamp.Sub(start)
	}
	if err != nil {
		event.Error = err.Error()
	}
	c.events.Log(event)
}

// callDriver invokes a driver function, converting panics and nil futures
// into errors.
func callDriver[T any](fn func() *Future[T]) (f *Future[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			f, err = nil, fmt.Errorf("driver panicked: %v", r)
		}
	}()
	f = fn()
	if f == nil {
		return nil, errNoResult
	}
	return f, nil
}

var _ AnyCharacteristic = (*Characteristic[float64])(nil)
