package interaction

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/hap-protocol/hap-go/pkg/model"
	"github.com/hap-protocol/hap-go/pkg/wire"
)

// Default operation timeouts.
const (
	DefaultReadTimeout  = 5 * time.Second
	DefaultWriteTimeout = 10 * time.Second
)

// target addresses a characteristic by short service and characteristic type.
type target struct {
	service        string
	characteristic string
}

func (t target) String() string {
	return t.service + "." + t.characteristic
}

// Server handles incoming requests and manages subscriptions.
type Server struct {
	mu sync.RWMutex

	services []*model.Service
	index    map[target]model.AnyCharacteristic

	readTimeout  time.Duration
	writeTimeout time.Duration
	logger       *slog.Logger

	notifyHandler NotificationHandler

	subscriptionsMu sync.RWMutex
	subscriptions   map[target]*Subscription
}

// NotificationHandler is called when a notification needs to be sent.
// It runs on the driver's goroutine.
type NotificationHandler func(notif *wire.Notification)

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithTimeouts sets the read and write timeouts. Zero keeps the default.
func WithTimeouts(read, write time.Duration) ServerOption {
	return func(s *Server) {
		if read > 0 {
			s.readTimeout = read
		}
		if write > 0 {
			s.writeTimeout = write
		}
	}
}

// WithServerLogger sets the operational logger.
func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a server for the given services. Two services of the
// same kind cannot be addressed and fail with model.ErrInvalidDefinition.
func NewServer(services []*model.Service, opts ...ServerOption) (*Server, error) {
	s := &Server{
		services:      append([]*model.Service(nil), services...),
		index:         make(map[target]model.AnyCharacteristic),
		readTimeout:   DefaultReadTimeout,
		writeTimeout:  DefaultWriteTimeout,
		logger:        slog.Default(),
		subscriptions: make(map[target]*Subscription),
	}
	for _, opt := range opts {
		opt(s)
	}

	kinds := make(map[string]bool, len(services))
	for _, svc := range services {
		kind := svc.Kind().ShortType()
		if kinds[kind] {
			return nil, fmt.Errorf("%w: two %s services", model.ErrInvalidDefinition, svc.Kind().Name)
		}
		kinds[kind] = true
		for _, c := range svc.Characteristics() {
			s.index[target{kind, c.Identity().ShortType()}] = c
		}
	}
	return s, nil
}

// Services returns the served services.
func (s *Server) Services() []*model.Service {
	return append([]*model.Service(nil), s.services...)
}

// SetNotificationHandler sets the handler for outgoing notifications.
func (s *Server) SetNotificationHandler(handler NotificationHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifyHandler = handler
}

// HandleRequest processes an incoming request and returns a response.
func (s *Server) HandleRequest(ctx context.Context, req *wire.Request) *wire.Response {
	if err := req.Validate(); err != nil {
		return errorResponse(req.MessageID, wire.StatusInvalidValue, err.Error())
	}

	switch req.Operation {
	case wire.OpRead:
		return s.handleRead(ctx, req)
	case wire.OpWrite:
		return s.handleWrite(ctx, req)
	case wire.OpSubscribe:
		return s.handleSubscribe(req)
	case wire.OpUnsubscribe:
		return s.handleUnsubscribe(req)
	case wire.OpDiscover:
		return s.handleDiscover(req)
	default:
		return errorResponse(req.MessageID, wire.StatusInvalidValue, "unknown operation")
	}
}

func (s *Server) lookup(req *wire.Request) (target, model.AnyCharacteristic, *wire.Response) {
	t := target{req.Service, req.Characteristic}
	c, ok := s.index[t]
	if !ok {
		return t, nil, errorResponse(req.MessageID, wire.StatusResourceNotFound,
			fmt.Sprintf("%v: %s", model.ErrCharacteristicNotFound, t))
	}
	return t, c, nil
}

// handleRead processes a Read request.
func (s *Server) handleRead(ctx context.Context, req *wire.Request) *wire.Response {
	_, c, resp := s.lookup(req)
	if resp != nil {
		return resp
	}

	ctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	v, err := c.ReadValue(ctx)
	if err != nil {
		return s.failed(req, err)
	}
	return &wire.Response{
		MessageID: req.MessageID,
		Status:    wire.StatusSuccess,
		Value:     v,
	}
}

// handleWrite processes a Write request.
func (s *Server) handleWrite(ctx context.Context, req *wire.Request) *wire.Response {
	_, c, resp := s.lookup(req)
	if resp != nil {
		return resp
	}

	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	if err := c.WriteValue(ctx, req.Value); err != nil {
		return s.failed(req, err)
	}
	return &wire.Response{MessageID: req.MessageID, Status: wire.StatusSuccess}
}

// handleSubscribe processes a Subscribe request. Subscribing twice to the
// same characteristic keeps a single subscription.
func (s *Server) handleSubscribe(req *wire.Request) *wire.Response {
	t, c, resp := s.lookup(req)
	if resp != nil {
		return resp
	}

	sub := newSubscription(t)
	err := c.SubscribeAny(func(v any) {
		s.notify(sub, v)
	})
	if err != nil {
		return s.failed(req, err)
	}

	s.subscriptionsMu.Lock()
	s.subscriptions[t] = sub
	s.subscriptionsMu.Unlock()

	return &wire.Response{MessageID: req.MessageID, Status: wire.StatusSuccess}
}

// handleUnsubscribe processes an Unsubscribe request.
func (s *Server) handleUnsubscribe(req *wire.Request) *wire.Response {
	t, c, resp := s.lookup(req)
	if resp != nil {
		return resp
	}

	c.Unsubscribe()

	s.subscriptionsMu.Lock()
	delete(s.subscriptions, t)
	s.subscriptionsMu.Unlock()

	return &wire.Response{MessageID: req.MessageID, Status: wire.StatusSuccess}
}

// handleDiscover processes a Discover request.
func (s *Server) handleDiscover(req *wire.Request) *wire.Response {
	infos := make([]*model.ServiceInfo, len(s.services))
	for i, svc := range s.services {
		infos[i] = svc.Info()
	}
	return &wire.Response{
		MessageID: req.MessageID,
		Status:    wire.StatusSuccess,
		Value:     infos,
	}
}

// notify sends a notification for sub.
func (s *Server) notify(sub *Subscription, value any) {
	s.mu.RLock()
	handler := s.notifyHandler
	s.mu.RUnlock()

	if handler == nil {
		return
	}

	handler(&wire.Notification{
		Service:        sub.Service,
		Characteristic: sub.Characteristic,
		Value:          value,
	})
	sub.MarkNotified(value)
}

// CancelAllSubscriptions cancels all subscriptions (e.g., on disconnect).
func (s *Server) CancelAllSubscriptions() {
	s.subscriptionsMu.Lock()
	defer s.subscriptionsMu.Unlock()

	for t := range s.subscriptions {
		if c, ok := s.index[t]; ok {
			c.Unsubscribe()
		}
		delete(s.subscriptions, t)
	}
}

// GetSubscription returns the subscription on a characteristic.
func (s *Server) GetSubscription(service, characteristic string) (*Subscription, bool) {
	s.subscriptionsMu.RLock()
	defer s.subscriptionsMu.RUnlock()
	sub, ok := s.subscriptions[target{service, characteristic}]
	return sub, ok
}

// Subscriptions returns the active subscriptions ordered by service and
// characteristic.
func (s *Server) Subscriptions() []*Subscription {
	s.subscriptionsMu.RLock()
	subs := make([]*Subscription, 0, len(s.subscriptions))
	for _, sub := range s.subscriptions {
		subs = append(subs, sub)
	}
	s.subscriptionsMu.RUnlock()

	sort.Slice(subs, func(i, j int) bool {
		if subs[i].Service != subs[j].Service {
			return subs[i].Service < subs[j].Service
		}
		return subs[i].Characteristic < subs[j].Characteristic
	})
	return subs
}

// SubscriptionCount returns the number of active subscriptions.
func (s *Server) SubscriptionCount() int {
	s.subscriptionsMu.RLock()
	defer s.subscriptionsMu.RUnlock()
	return len(s.subscriptions)
}

func (s *Server) failed(req *wire.Request, err error) *wire.Response {
	status := wire.StatusFromError(err)
	s.logger.Debug("request failed",
		"op", req.Operation.String(),
		"target", target{req.Service, req.Characteristic}.String(),
		"status", status.String(),
		"error", err)
	return errorResponse(req.MessageID, status, err.Error())
}

// errorResponse creates an error response.
func errorResponse(msgID uint32, status wire.Status, message string) *wire.Response {
	return &wire.Response{
		MessageID: msgID,
		Status:    status,
		Message:   message,
	}
}
