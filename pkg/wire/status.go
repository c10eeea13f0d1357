package wire

import (
	"context"
	"errors"

	"github.com/hap-protocol/hap-go/pkg/model"
)

// Status represents a HAP characteristic status code.
type Status int32

const (
	// StatusSuccess indicates the operation completed successfully.
	StatusSuccess Status = 0

	// StatusInsufficientPrivileges indicates the controller lacks permission.
	StatusInsufficientPrivileges Status = -70401

	// StatusCommunicationFailure indicates the accessory could not reach the device.
	StatusCommunicationFailure Status = -70402

	// StatusBusy indicates the accessory is busy; try again later.
	StatusBusy Status = -70403

	// StatusReadOnly indicates a write to a read-only characteristic.
	StatusReadOnly Status = -70404

	// StatusWriteOnly indicates a read from a write-only characteristic.
	StatusWriteOnly Status = -70405

	// StatusNotificationNotSupported indicates the characteristic cannot notify.
	StatusNotificationNotSupported Status = -70406

	// StatusOutOfResources indicates the accessory is out of resources.
	StatusOutOfResources Status = -70407

	// StatusTimeout indicates the operation timed out.
	StatusTimeout Status = -70408

	// StatusResourceNotFound indicates the service or characteristic doesn't exist.
	StatusResourceNotFound Status = -70409

	// StatusInvalidValue indicates the value is outside the characteristic's domain.
	StatusInvalidValue Status = -70410
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusInsufficientPrivileges:
		return "INSUFFICIENT_PRIVILEGES"
	case StatusCommunicationFailure:
		return "COMMUNICATION_FAILURE"
	case StatusBusy:
		return "BUSY"
	case StatusReadOnly:
		return "READ_ONLY"
	case StatusWriteOnly:
		return "WRITE_ONLY"
	case StatusNotificationNotSupported:
		return "NOTIFICATION_NOT_SUPPORTED"
	case StatusOutOfResources:
		return "OUT_OF_RESOURCES"
	case StatusTimeout:
		return "TIMEOUT"
	case StatusResourceNotFound:
		return "RESOURCE_NOT_FOUND"
	case StatusInvalidValue:
		return "INVALID_VALUE"
	default:
		return "UNKNOWN"
	}
}

// IsSuccess returns true if the status indicates success.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}

// IsError returns true if the status indicates an error.
func (s Status) IsError() bool {
	return s != StatusSuccess
}

// StatusFromError maps a characteristic error to a status code.
// Timeouts are checked first: an expired read is also reported as
// model.ErrValueUnavailable.
func StatusFromError(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return StatusTimeout
	case errors.Is(err, model.ErrInvalidValue):
		return StatusInvalidValue
	case errors.Is(err, model.ErrNotWritable):
		return StatusReadOnly
	case errors.Is(err, model.ErrNotObservable):
		return StatusNotificationNotSupported
	case errors.Is(err, model.ErrCharacteristicNotFound):
		return StatusResourceNotFound
	default:
		return StatusCommunicationFailure
	}
}
