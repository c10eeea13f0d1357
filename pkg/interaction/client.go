package interaction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hap-protocol/hap-go/pkg/model"
	"github.com/hap-protocol/hap-go/pkg/wire"
)

// DefaultRequestTimeout bounds how long a client waits for a response.
const DefaultRequestTimeout = 30 * time.Second

// Client errors.
var (
	ErrRequestTimeout  = errors.New("request timed out")
	ErrClientClosed    = errors.New("client is closed")
	ErrUnexpectedReply = errors.New("unexpected reply")
)

// RequestSender delivers an encoded request to the server.
type RequestSender interface {
	Send(data []byte) error
}

// Client issues characteristic requests and correlates their responses by
// message ID.
type Client struct {
	sender RequestSender
	msgID  atomic.Uint32

	mu       sync.Mutex
	timeout  time.Duration
	onNotify func(*wire.Notification)
	inflight map[uint32]chan *wire.Response

	done      chan struct{}
	closeOnce sync.Once
}

// NewClient creates a client sending through sender. Responses and
// notifications are fed back with HandleMessage.
func NewClient(sender RequestSender) *Client {
	return &Client{
		sender:   sender,
		timeout:  DefaultRequestTimeout,
		inflight: make(map[uint32]chan *wire.Response),
		done:     make(chan struct{}),
	}
}

// SetTimeout sets how long a request waits for its response.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.mu.Lock()
	c.timeout = timeout
	c.mu.Unlock()
}

// SetNotificationHandler sets the handler for incoming notifications.
func (c *Client) SetNotificationHandler(handler func(*wire.Notification)) {
	c.mu.Lock()
	c.onNotify = handler
	c.mu.Unlock()
}

// Close fails every waiting request with ErrClientClosed. Closing twice is
// a no-op.
func (c *Client) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

func (c *Client) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// newMessageID skips the ID reserved for notifications on wrap-around.
func (c *Client) newMessageID() uint32 {
	for {
		if id := c.msgID.Add(1); id != wire.NotificationMessageID {
			return id
		}
	}
}

// register reserves a response slot for id.
func (c *Client) register(id uint32) (chan *wire.Response, time.Duration) {
	ch := make(chan *wire.Response, 1)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight[id] = ch
	return ch, c.timeout
}

func (c *Client) release(id uint32) {
	c.mu.Lock()
	delete(c.inflight, id)
	c.mu.Unlock()
}

// roundTrip sends req and waits for the matching response.
func (c *Client) roundTrip(ctx context.Context, req *wire.Request) (*wire.Response, error) {
	if c.closed() {
		return nil, ErrClientClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req.MessageID = c.newMessageID()
	data, err := wire.EncodeRequest(req)
	if err != nil {
		return nil, err
	}

	reply, timeout := c.register(req.MessageID)
	defer c.release(req.MessageID)

	if err := c.sender.Send(data); err != nil {
		return nil, fmt.Errorf("sending %s request: %w", req.Operation, err)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case resp := <-reply:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, fmt.Errorf("%w: %s after %s", ErrRequestTimeout, req.Operation, timeout)
	case <-c.done:
		return nil, ErrClientClosed
	}
}

// HandleMessage routes an encoded response or notification.
func (c *Client) HandleMessage(data []byte) error {
	typ, err := wire.PeekMessageType(data)
	if err != nil {
		return err
	}

	switch typ {
	case wire.MessageTypeResponse:
		resp, err := wire.DecodeResponse(data)
		if err != nil {
			return err
		}
		return c.HandleResponse(resp)
	case wire.MessageTypeNotification:
		notif, err := wire.DecodeNotification(data)
		if err != nil {
			return err
		}
		c.HandleNotification(notif)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnexpectedReply, typ)
	}
}

// HandleResponse hands resp to the request waiting for it. A response
// nobody waits for, e.g. one that arrives after its request timed out,
// fails with ErrUnexpectedReply.
func (c *Client) HandleResponse(resp *wire.Response) error {
	c.mu.Lock()
	reply, ok := c.inflight[resp.MessageID]
	delete(c.inflight, resp.MessageID)
	c.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: message %d", ErrUnexpectedReply, resp.MessageID)
	}
	reply <- resp
	return nil
}

// HandleNotification passes notif to the notification handler.
func (c *Client) HandleNotification(notif *wire.Notification) {
	c.mu.Lock()
	handler := c.onNotify
	c.mu.Unlock()

	if handler != nil {
		handler(notif)
	}
}

// call performs one operation on a characteristic and turns failure
// statuses into a *StatusError.
func (c *Client) call(ctx context.Context, op wire.Operation, service, characteristic string, value any) (any, error) {
	resp, err := c.roundTrip(ctx, &wire.Request{
		Operation:      op,
		Service:        service,
		Characteristic: characteristic,
		Value:          value,
	})
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, &StatusError{Status: resp.Status, Message: resp.Message}
	}
	return resp.Value, nil
}

// Read reads the value of a characteristic.
func (c *Client) Read(ctx context.Context, service, characteristic string) (any, error) {
	return c.call(ctx, wire.OpRead, service, characteristic, nil)
}

// Write writes the value of a characteristic.
func (c *Client) Write(ctx context.Context, service, characteristic string, value any) error {
	_, err := c.call(ctx, wire.OpWrite, service, characteristic, value)
	return err
}

// Subscribe enables change notifications for a characteristic.
func (c *Client) Subscribe(ctx context.Context, service, characteristic string) error {
	_, err := c.call(ctx, wire.OpSubscribe, service, characteristic, nil)
	return err
}

// Unsubscribe disables change notifications for a characteristic.
func (c *Client) Unsubscribe(ctx context.Context, service, characteristic string) error {
	_, err := c.call(ctx, wire.OpUnsubscribe, service, characteristic, nil)
	return err
}

// Discover describes the accessory's services.
func (c *Client) Discover(ctx context.Context) ([]*model.ServiceInfo, error) {
	v, err := c.call(ctx, wire.OpDiscover, "", "", nil)
	if err != nil {
		return nil, err
	}
	return wire.Services(v)
}

// StatusError is a failed response status.
type StatusError struct {
	Status  wire.Status
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return e.Status.String()
	}
	return e.Status.String() + ": " + e.Message
}
