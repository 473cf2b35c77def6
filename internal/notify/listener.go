package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/staykit/staykit-go/internal/domain"
)

// Hub protocol constants.
const (
	// HubPath is the websocket endpoint the platform exposes for push
	// notifications.
	HubPath = "/notificationsHub"

	// EventSendPushNotification is the hub message type carrying a
	// notification.
	EventSendPushNotification = "SendPushNotification"
)

const (
	pingInterval = 30 * time.Second
	pongWait     = 60 * time.Second
	writeWait    = 10 * time.Second

	reconnectMin = time.Second
	reconnectMax = 30 * time.Second
)

// hubMessage is the wire envelope for hub events.
type hubMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Handler receives each push notification delivered over the hub.
type Handler func(domain.Notification)

// Listener maintains a websocket connection to the notification hub
// and dispatches incoming push notifications to a handler.
type Listener struct {
	url     string
	token   func() string
	handler Handler
	logger  *slog.Logger
	dialer  *websocket.Dialer
}

// ListenerOption configures a Listener.
type ListenerOption func(*Listener)

// WithListenerLogger sets the logger for connection lifecycle events.
func WithListenerLogger(l *slog.Logger) ListenerOption {
	return func(ln *Listener) {
		if l != nil {
			ln.logger = l
		}
	}
}

// WithListenerToken sets a bearer token source for the hub handshake.
func WithListenerToken(source func() string) ListenerOption {
	return func(ln *Listener) { ln.token = source }
}

// WithDialer replaces the default websocket dialer.
func WithDialer(d *websocket.Dialer) ListenerOption {
	return func(ln *Listener) {
		if d != nil {
			ln.dialer = d
		}
	}
}

// NewListener creates a Listener for the given hub URL. The handler is
// invoked from the read loop, one notification at a time.
func NewListener(url string, handler Handler, opts ...ListenerOption) *Listener {
	ln := &Listener{
		url:     url,
		handler: handler,
		logger:  slog.Default(),
		dialer:  websocket.DefaultDialer,
	}
	for _, opt := range opts {
		opt(ln)
	}
	return ln
}

// Run connects to the hub and dispatches notifications until ctx is
// cancelled, reconnecting with backoff after a dropped connection.
func (ln *Listener) Run(ctx context.Context) error {
	backoff := reconnectMin
	for {
		err := ln.connectAndRead(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		ln.logger.LogAttrs(ctx, slog.LevelWarn, "hub connection lost",
			slog.String("url", ln.url),
			slog.String("error", err.Error()),
			slog.Duration("retry_in", backoff),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, reconnectMax)
	}
}

// connectAndRead runs one connection lifetime: dial, read until the
// connection drops or ctx is cancelled.
func (ln *Listener) connectAndRead(ctx context.Context) error {
	header := http.Header{}
	if ln.token != nil {
		if tok := ln.token(); tok != "" {
			header.Set("Authorization", "Bearer "+tok)
		}
	}

	conn, resp, err := ln.dialer.DialContext(ctx, ln.url, header)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return domain.NewAppError(domain.CodeUnauthorized, "hub handshake rejected", err)
		}
		return domain.NewAppError(domain.CodeNetwork, "dial hub: "+err.Error(), err)
	}
	defer conn.Close()

	ln.logger.LogAttrs(ctx, slog.LevelInfo, "hub connected", slog.String("url", ln.url))

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Close the connection when ctx is cancelled so ReadMessage
	// unblocks; the ping loop shares the same lifetime.
	done := make(chan struct{})
	defer close(done)
	go ln.keepAlive(ctx, conn, done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return domain.NewAppError(domain.CodeNetwork, "read hub message: "+err.Error(), err)
		}
		ln.dispatch(ctx, data)
	}
}

// keepAlive pings the hub on an interval and closes the connection on
// cancellation.
func (ln *Listener) keepAlive(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			conn.Close()
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				conn.Close()
				return
			}
		}
	}
}

// dispatch decodes one hub message and hands notifications to the
// handler. Unknown message types are logged and skipped.
func (ln *Listener) dispatch(ctx context.Context, data []byte) {
	var msg hubMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		ln.logger.LogAttrs(ctx, slog.LevelWarn, "malformed hub message", slog.String("error", err.Error()))
		return
	}

	switch msg.Type {
	case EventSendPushNotification:
		var n domain.Notification
		if err := json.Unmarshal(msg.Payload, &n); err != nil {
			ln.logger.LogAttrs(ctx, slog.LevelWarn, "malformed push notification", slog.String("error", err.Error()))
			return
		}
		if ln.handler != nil {
			ln.handler(n)
		}
	default:
		ln.logger.LogAttrs(ctx, slog.LevelDebug, "ignoring hub message", slog.String("type", msg.Type))
	}
}
