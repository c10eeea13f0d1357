// Package subscription implements the change-notification slot used by
// characteristics.
//
// A Slot holds at most one callback. Registering a new callback replaces the
// previous one, and clearing the slot is idempotent.
//
// # Coalescing Behavior
//
// Notify is called from whatever goroutine the device driver uses to detect
// state changes. While a delivery is in flight, further Notify calls only
// record the value; when the in-flight callback returns, the most recent value
// is delivered exactly once. Intermediate values are dropped, so a subscriber
// always converges on the current state without a queue building up.
//
// # Replacement and Clearing
//
// The callback reference is read under the slot lock immediately before each
// delivery. Once Set or Clear returns, no delivery to the previous callback
// starts; a delivery that had already started may finish. The lock is never
// held while a callback runs, so callbacks may call Set, Clear or Notify on
// their own slot.
//
// # Failure Isolation
//
// A panicking callback is recovered and reported through the slot's panic
// handler. The slot stays usable and later notifications are delivered
// normally.
package subscription
