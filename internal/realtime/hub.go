// Package realtime pushes notifications to connected websocket clients.
package realtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"recipehub/internal/model"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Message is the envelope written to clients.
type Message struct {
	Type         string `json:"type"`
	ID           uint   `json:"id,omitempty"`
	UserID       int    `json:"user_id"`
	OriginUserID int    `json:"origin_user_id,omitempty"`
	Message      string `json:"message"`
}

// client serializes writes; gorilla connections allow one concurrent writer.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

func (c *client) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// Hub tracks open connections per user.
type Hub struct {
	mu       sync.RWMutex
	clients  map[int]map[*client]struct{}
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[int]map[*client]struct{}),
		logger:  logger.With("component", "realtime"),
	}
}

// Connections returns how many sockets userID has open.
func (h *Hub) Connections(userID int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) add(userID int, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*client]struct{})
	}
	h.clients[userID][c] = struct{}{}
}

func (h *Hub) remove(userID int, c *client) {
	h.mu.Lock()
	if set, ok := h.clients[userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, userID)
		}
	}
	h.mu.Unlock()
	c.conn.Close()
}

// Publish writes n to every connection of its recipient. Connections that
// fail to accept the write are dropped.
func (h *Hub) Publish(_ context.Context, n model.Notification) error {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients[n.UserID]))
	for c := range h.clients[n.UserID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	msg := Message{
		Type:         "notification",
		ID:           n.ID,
		UserID:       n.UserID,
		OriginUserID: n.OriginUserID,
		Message:      n.Message,
	}

	var errs []error
	for _, c := range targets {
		if err := c.write(msg); err != nil {
			errs = append(errs, err)
			h.remove(n.UserID, c)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("deliver to user %d: %w", n.UserID, errors.Join(errs...))
	}
	return nil
}

// Serve upgrades the request and blocks until the client goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID int) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("websocket upgrade: %w", err)
	}
	c := &client{conn: conn}

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	h.add(userID, c)
	defer h.remove(userID, c)

	if err := c.write(Message{Type: "connected", UserID: userID, Message: "listening for notifications"}); err != nil {
		return nil
	}
	h.logger.Debug("client connected", "user_id", userID)

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := c.ping(); err != nil {
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				h.logger.Warn("websocket read", "user_id", userID, "error", err)
			}
			return nil
		}
	}
}
