package interaction

import (
	"sync"
	"time"
)

// Subscription is an active notification subscription on one
// characteristic.
type Subscription struct {
	mu sync.RWMutex

	// Service is the short type of the subscribed service.
	Service string

	// Characteristic is the short type of the subscribed characteristic.
	Characteristic string

	// Since is when the subscription was created.
	Since time.Time

	lastNotify time.Time
	lastValue  any
	count      uint64
}

func newSubscription(t target) *Subscription {
	return &Subscription{
		Service:        t.service,
		Characteristic: t.characteristic,
		Since:          time.Now(),
	}
}

// MarkNotified records that a notification carrying value was sent.
func (s *Subscription) MarkNotified(value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastNotify = time.Now()
	s.lastValue = value
	s.count++
}

// LastValue returns the most recently notified value.
func (s *Subscription) LastValue() (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastValue, s.count > 0
}

// Count returns the number of notifications sent.
func (s *Subscription) Count() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// TimeSinceLastNotify returns the duration since the last notification,
// or since creation if none was sent.
func (s *Subscription) TimeSinceLastNotify() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.count == 0 {
		return time.Since(s.Since)
	}
	return time.Since(s.lastNotify)
}
