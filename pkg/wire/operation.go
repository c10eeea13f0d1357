package wire

// Operation represents a request operation.
type Operation uint8

const (
	// OpRead gets the current value of a characteristic.
	OpRead Operation = 1

	// OpWrite sets the value of a characteristic.
	OpWrite Operation = 2

	// OpSubscribe enables change notifications for a characteristic.
	OpSubscribe Operation = 3

	// OpUnsubscribe disables change notifications for a characteristic.
	OpUnsubscribe Operation = 4

	// OpDiscover lists the accessory's services and characteristics.
	OpDiscover Operation = 5
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OpRead:
		return "Read"
	case OpWrite:
		return "Write"
	case OpSubscribe:
		return "Subscribe"
	case OpUnsubscribe:
		return "Unsubscribe"
	case OpDiscover:
		return "Discover"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the operation is known.
func (o Operation) IsValid() bool {
	return o >= OpRead && o <= OpDiscover
}
