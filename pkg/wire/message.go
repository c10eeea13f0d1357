package wire

import (
	"fmt"

	"github.com/hap-protocol/hap-go/pkg/model"
)

// CBOR map keys for message encoding.
const (
	KeyMessageID      = 1
	KeyOpOrStatus     = 2 // Operation (request) or Status (response)
	KeyService        = 3
	KeyCharacteristic = 4
	KeyValue          = 5
	KeyMessage        = 6
)

// MessageID 0 is reserved to indicate a notification message.
const NotificationMessageID uint32 = 0

// Request represents a request from controller to accessory.
//
// CBOR encoding:
//
//	{
//	  1: messageId,       // uint32
//	  2: operation,       // uint8: 1=Read, 2=Write, 3=Subscribe, 4=Unsubscribe, 5=Discover
//	  3: service,         // short service type, e.g. "B7"
//	  4: characteristic,  // short characteristic type, e.g. "29"
//	  5: value            // Write only
//	}
type Request struct {
	MessageID      uint32    `cbor:"1,keyasint"`
	Operation      Operation `cbor:"2,keyasint"`
	Service        string    `cbor:"3,keyasint,omitempty"`
	Characteristic string    `cbor:"4,keyasint,omitempty"`
	Value          any       `cbor:"5,keyasint,omitempty"`
}

// Validate checks if the request is valid.
func (r *Request) Validate() error {
	if r.MessageID == NotificationMessageID {
		return fmt.Errorf("messageId 0 is reserved for notifications")
	}
	if !r.Operation.IsValid() {
		return fmt.Errorf("invalid operation: %d", r.Operation)
	}
	if r.Operation != OpDiscover && (r.Service == "" || r.Characteristic == "") {
		return fmt.Errorf("%s request needs service and characteristic", r.Operation)
	}
	if r.Operation == OpWrite && r.Value == nil {
		return fmt.Errorf("write request has no value")
	}
	return nil
}

// Response represents a response from accessory to controller.
//
// CBOR encoding:
//
//	{
//	  1: messageId,    // uint32: matches request
//	  2: status,       // int32: 0=success, or HAP status code
//	  5: value,        // Read: the value; Discover: the services
//	  6: message       // error text (if failed)
//	}
type Response struct {
	MessageID uint32 `cbor:"1,keyasint"`
	Status    Status `cbor:"2,keyasint"`
	Value     any    `cbor:"5,keyasint,omitempty"`
	Message   string `cbor:"6,keyasint,omitempty"`
}

// IsSuccess returns true if the response indicates success.
func (r *Response) IsSuccess() bool {
	return r.Status.IsSuccess()
}

// Notification represents a characteristic change from accessory to
// controller.
//
// CBOR encoding:
//
//	{
//	  1: 0,               // messageId 0 = notification
//	  3: service,
//	  4: characteristic,
//	  5: value
//	}
type Notification struct {
	Service        string `cbor:"3,keyasint"`
	Characteristic string `cbor:"4,keyasint"`
	Value          any    `cbor:"5,keyasint"`
}

// Services extracts the services from a Discover response value.
// After a CBOR round-trip the value is a generic array, so it is re-decoded.
func Services(value any) ([]*model.ServiceInfo, error) {
	if value == nil {
		return nil, nil
	}
	if s, ok := value.([]*model.ServiceInfo); ok {
		return s, nil
	}
	data, err := Marshal(value)
	if err != nil {
		return nil, err
	}
	return DecodeServices(data)
}
