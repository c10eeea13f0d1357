package interaction

import (
	"context"

	"github.com/hap-protocol/hap-go/pkg/wire"
)

// loopback carries encoded messages between a Client and a Server in the
// same process. Every message goes through the wire codec.
type loopback struct {
	server *Server
	client *Client
}

// Connect returns a client talking to server in-process. The server's
// notification handler is replaced.
func Connect(server *Server) *Client {
	l := &loopback{server: server}
	l.client = NewClient(l)

	server.SetNotificationHandler(func(notif *wire.Notification) {
		data, err := wire.EncodeNotification(notif)
		if err != nil {
			server.logger.Warn("encoding notification failed", "error", err)
			return
		}
		if err := l.client.HandleMessage(data); err != nil {
			server.logger.Warn("delivering notification failed", "error", err)
		}
	})
	return l.client
}

// Send implements RequestSender. The request is served on its own goroutine,
// like a request arriving on a connection.
func (l *loopback) Send(data []byte) error {
	req, err := wire.DecodeRequest(data)
	if err != nil {
		return err
	}

	go func() {
		resp := l.server.HandleRequest(context.Background(), req)
		out, err := wire.EncodeResponse(resp)
		if err != nil {
			l.server.logger.Warn("encoding response failed", "error", err)
			return
		}
		// A response for a request that already timed out is dropped.
		_ = l.client.HandleMessage(out)
	}()
	return nil
}
