package log

import (
	"time"
)

// Event represents a single characteristic operation.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the operation completed (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// Operation is the kind of access that was performed.
	Operation Operation `cbor:"2,keyasint"`

	// Characteristic is the display name of the characteristic.
	Characteristic string `cbor:"3,keyasint"`

	// Type is the characteristic type UUID in canonical string form.
	Type string `cbor:"4,keyasint,omitempty"`

	// Value is the value read, written or notified (CBOR-compatible).
	Value any `cbor:"5,keyasint,omitempty"`

	// Error holds the failure text when the operation failed.
	Error string `cbor:"6,keyasint,omitempty"`

	// Duration is the time from request to completion. Stored as nanoseconds.
	Duration time.Duration `cbor:"7,keyasint,omitempty"`

	// Replaced is set on subscribe events that replaced an active callback.
	Replaced bool `cbor:"8,keyasint,omitempty"`
}

// Failed reports whether the event records a failed operation.
func (e Event) Failed() bool {
	return e.Error != ""
}

// Operation identifies the characteristic operation captured by an event.
type Operation uint8

const (
	// OperationRead is a getValue call.
	OperationRead Operation = 0
	// OperationWrite is a setValue call.
	OperationWrite Operation = 1
	// OperationSubscribe registers or replaces the change callback.
	OperationSubscribe Operation = 2
	// OperationUnsubscribe clears the change callback.
	OperationUnsubscribe Operation = 3
	// OperationNotify is a delivered change notification.
	OperationNotify Operation = 4
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OperationRead:
		return "READ"
	case OperationWrite:
		return "WRITE"
	case OperationSubscribe:
		return "SUBSCRIBE"
	case OperationUnsubscribe:
		return "UNSUBSCRIBE"
	case OperationNotify:
		return "NOTIFY"
	default:
		return "UNKNOWN"
	}
}

// ParseOperation parses an operation name (case-sensitive upper-case form
// as returned by String, or the lower-case equivalent).
func ParseOperation(s string) (Operation, bool) {
	switch s {
	case "READ", "read":
		return OperationRead, true
	case "WRITE", "write":
		return OperationWrite, true
	case "SUBSCRIBE", "subscribe":
		return OperationSubscribe, true
	case "UNSUBSCRIBE", "unsubscribe":
		return OperationUnsubscribe, true
	case "NOTIFY", "notify":
		return OperationNotify, true
	default:
		return 0, false
	}
}
