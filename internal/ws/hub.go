// Package ws pushes store notifications and row-change events to connected
// desktop and mobile clients so every open UI stays in sync.
package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/contentdeskhq/contentdesk/internal/store"
)

type Message struct {
	Type      string          `json:"type"` // notice, change
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

type Hub struct {
	mu      sync.RWMutex
	clients map[*client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]bool)}
}

// Notify implements store.Notifier: every user-facing notice is mirrored to
// all connected clients.
func (h *Hub) Notify(n store.Notification) {
	h.broadcast("notice", n)
}

// BroadcastChange mirrors a reconciled row change to connected clients.
func (h *Hub) BroadcastChange(ev store.ChangeEvent) {
	h.broadcast("change", ev)
}

func (h *Hub) broadcast(msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("dropping broadcast", "type", msgType, "error", err)
		return
	}
	raw, err := json.Marshal(Message{Type: msgType, Data: data, Timestamp: time.Now().Unix()})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- raw:
		default:
			// Slow consumer; drop rather than block the store.
		}
	}
}

// Handler upgrades the connection and keeps it registered until it closes.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		c := &client{conn: conn, send: make(chan []byte, 32)}

		h.mu.Lock()
		h.clients[c] = true
		h.mu.Unlock()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for msg := range c.send {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}()

		// Inbound traffic is ignored; the read loop only detects closure.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		close(c.send)
		<-done
	})
}

// Upgrade gates the route on a websocket upgrade request.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}
