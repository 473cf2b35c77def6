package stub

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/staykit/staykit-go/internal/domain"
	"github.com/staykit/staykit-go/internal/notify"
)

const hubWriteWait = 10 * time.Second

// Hub fans push notifications out to websocket subscribers on
// /notificationsHub.
type Hub struct {
	logger *slog.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}

	upgrader websocket.Upgrader
}

// NewHub creates an empty Hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger:  logger,
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			// The stub is a development tool; origins are not checked.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handle upgrades the request and keeps the connection subscribed
// until the peer closes it. Inbound messages other than control frames
// are discarded; the hub is push-only.
func (h *Hub) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written its own error response.
		h.logger.WarnContext(c.Request.Context(), "hub upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()
	h.logger.InfoContext(c.Request.Context(), "hub client connected", "clients", count)

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast pushes one notification to every subscriber. Connections
// that fail to accept the write are dropped.
func (h *Hub) Broadcast(n domain.Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		h.logger.Warn("encode notification failed", "error", err)
		return
	}
	msg, err := json.Marshal(map[string]json.RawMessage{
		"type":    json.RawMessage(`"` + notify.EventSendPushNotification + `"`),
		"payload": payload,
	})
	if err != nil {
		h.logger.Warn("encode hub message failed", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(hubWriteWait))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
