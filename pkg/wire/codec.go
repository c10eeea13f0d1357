package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/hap-protocol/hap-go/pkg/model"
)

// Messages are CBOR maps with small integer keys. Encoding is canonical;
// decoding ignores unknown keys so newer peers can add fields.
var (
	encMode = mustEncMode(cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	})
	decMode = mustDecMode(cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	em, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("wire: invalid CBOR encoding options: %v", err))
	}
	return em
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	dm, err := opts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("wire: invalid CBOR decoding options: %v", err))
	}
	return dm
}

// Marshal encodes a value to CBOR bytes.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR bytes into a value.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// EncodeRequest encodes a request message to CBOR bytes.
func EncodeRequest(req *Request) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	return Marshal(req)
}

// DecodeRequest decodes CBOR bytes into a request message.
func DecodeRequest(data []byte) (*Request, error) {
	var req Request
	if err := Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to decode request: %w", err)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	return &req, nil
}

// EncodeResponse encodes a response message to CBOR bytes.
func EncodeResponse(resp *Response) ([]byte, error) {
	return Marshal(resp)
}

// DecodeResponse decodes CBOR bytes into a response message.
func DecodeResponse(data []byte) (*Response, error) {
	var resp Response
	if err := Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}

// notificationFrame is a Notification on the wire. The reserved message
// ID tells it apart from responses.
type notificationFrame struct {
	MessageID      uint32 `cbor:"1,keyasint"`
	Service        string `cbor:"3,keyasint"`
	Characteristic string `cbor:"4,keyasint"`
	Value          any    `cbor:"5,keyasint"`
}

// EncodeNotification encodes a notification message to CBOR bytes.
func EncodeNotification(notif *Notification) ([]byte, error) {
	return Marshal(notificationFrame{
		MessageID:      NotificationMessageID,
		Service:        notif.Service,
		Characteristic: notif.Characteristic,
		Value:          notif.Value,
	})
}

// DecodeNotification decodes CBOR bytes into a notification message.
func DecodeNotification(data []byte) (*Notification, error) {
	var frame notificationFrame
	if err := Unmarshal(data, &frame); err != nil {
		return nil, fmt.Errorf("failed to decode notification: %w", err)
	}
	if frame.MessageID != NotificationMessageID {
		return nil, fmt.Errorf("not a notification message: messageId=%d", frame.MessageID)
	}
	return &Notification{
		Service:        frame.Service,
		Characteristic: frame.Characteristic,
		Value:          frame.Value,
	}, nil
}

// EncodeServices encodes service descriptions to CBOR bytes.
func EncodeServices(services []*model.ServiceInfo) ([]byte, error) {
	return Marshal(services)
}

// DecodeServices decodes CBOR bytes into service descriptions.
func DecodeServices(data []byte) ([]*model.ServiceInfo, error) {
	var services []*model.ServiceInfo
	if err := Unmarshal(data, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

// MessageType represents the type of a decoded message.
type MessageType int

const (
	MessageTypeUnknown MessageType = iota
	MessageTypeRequest
	MessageTypeResponse
	MessageTypeNotification
)

// String returns the message type name.
func (t MessageType) String() string {
	switch t {
	case MessageTypeRequest:
		return "Request"
	case MessageTypeResponse:
		return "Response"
	case MessageTypeNotification:
		return "Notification"
	default:
		return "Unknown"
	}
}

// PeekMessageType examines CBOR data to determine the message type
// without fully decoding it.
//
// Message type detection logic:
// - Notification: messageId (key 1) = 0
// - Request: key 2 is a valid operation (1-5)
// - Response: key 2 is a status (0 or negative)
func PeekMessageType(data []byte) (MessageType, error) {
	var peek struct {
		MessageID uint32 `cbor:"1,keyasint"`
		Field2    int64  `cbor:"2,keyasint"`
	}
	if err := Unmarshal(data, &peek); err != nil {
		return MessageTypeUnknown, fmt.Errorf("failed to peek message: %w", err)
	}

	if peek.MessageID == NotificationMessageID {
		return MessageTypeNotification, nil
	}
	if peek.Field2 >= int64(OpRead) && peek.Field2 <= int64(OpDiscover) {
		return MessageTypeRequest, nil
	}
	return MessageTypeResponse, nil
}
