package canvas

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/portgraph/internal/ctxlog"
	"github.com/vk/portgraph/internal/node"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultEventName is the socket.io event SocketIO emits canvas events as.
const DefaultEventName = "canvas"

// connectTimeout bounds the wait for the socket.io handshake.
const connectTimeout = 15 * time.Second

// Emitter sends one socket.io event.
type Emitter interface {
	Emit(event string, args ...any)
}

// SocketIO mirrors canvas events to a remote editor over socket.io.
type SocketIO struct {
	emitter Emitter
	event   string
	close   func()
}

// NewSocketIO returns a canvas emitting every event as eventName through e.
// An empty eventName selects DefaultEventName.
func NewSocketIO(e Emitter, eventName string) *SocketIO {
	if eventName == "" {
		eventName = DefaultEventName
	}
	return &SocketIO{emitter: e, event: eventName, close: func() {}}
}

// DialOptions configures DialSocketIO.
type DialOptions struct {
	Namespace          string
	EventName          string
	InsecureSkipVerify bool
}

// DialSocketIO connects to the socket.io server at rawURL and returns a
// canvas mirroring events to it. It blocks until the connection succeeds,
// fails, times out or ctx is done.
func DialSocketIO(ctx context.Context, rawURL string, o DialOptions) (*SocketIO, error) {
	logger := ctxlog.FromContext(ctx).With("canvas", "socketio", "url", rawURL)
	logger.Info("Connecting canvas mirror...")

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if o.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(o.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Canvas mirror connected.", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err, ok := errs[0].(error)
		if !ok {
			err = fmt.Errorf("%v", errs[0])
		}
		connectChan <- err
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection")
	case <-time.After(connectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", connectTimeout)
	}

	s := NewSocketIO(socketEmitter{io}, o.EventName)
	s.close = func() {
		logger.Info("Disconnecting canvas mirror.", "sid", io.Id())
		io.Disconnect()
	}
	return s, nil
}

// socketEmitter adapts a socket.io client socket to Emitter.
type socketEmitter struct {
	io *socket.Socket
}

func (s socketEmitter) Emit(event string, args ...any) {
	s.io.Emit(event, args...)
}

// Close disconnects a mirror created by DialSocketIO.
func (s *SocketIO) Close() error {
	s.close()
	return nil
}

func (s *SocketIO) emit(e Event) { s.emitter.Emit(s.event, e) }

func (s *SocketIO) AddLink(src, dst *node.Port)       { sink(s.emit).AddLink(src, dst) }
func (s *SocketIO) RemoveLink(src, dst *node.Port)    { sink(s.emit).RemoveLink(src, dst) }
func (s *SocketIO) UpdatePortAppearance(p *node.Port) { sink(s.emit).UpdatePortAppearance(p) }
func (s *SocketIO) AddNode(n *node.Node)              { sink(s.emit).AddNode(n) }
func (s *SocketIO) RemoveNode(n *node.Node)           { sink(s.emit).RemoveNode(n) }
func (s *SocketIO) Refresh(n *node.Node)              { sink(s.emit).Refresh(n) }
