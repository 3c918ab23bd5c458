// Package ws streams game events to browser clients over websockets.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"runeforge/internal/domain/event"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 64
)

type message struct {
	Type   string        `json:"type"`
	Events []event.Event `json:"events"`
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans notifications out to connected clients. A client that cannot
// keep up loses messages instead of slowing the game down.
type Hub struct {
	mu       sync.Mutex
	subs     map[*subscriber]struct{}
	logger   *log.Logger
	upgrader websocket.Upgrader
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		subs:   map[*subscriber]struct{}{},
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) Notify(_ context.Context, events []event.Event) {
	if len(events) == 0 {
		return
	}
	data, err := json.Marshal(message{Type: "events", Events: events})
	if err != nil {
		h.logger.Printf("ws: marshal events: %v", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		select {
		case sub.send <- data:
		default:
			h.logger.Printf("ws: dropping %d events for slow client %s", len(events), sub.conn.RemoteAddr())
		}
	}
}

// ServeHTTP upgrades the request and keeps the client subscribed until it
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("ws: upgrade failed: %v", err)
		return
	}
	sub := &subscriber{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(sub)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(sub)
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.send)
	}
	h.mu.Unlock()
	sub.conn.Close()
}

func (h *Hub) writeLoop(sub *subscriber) {
	for data := range sub.send {
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := sub.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Printf("ws: write to %s: %v", sub.conn.RemoteAddr(), err)
			h.remove(sub)
			return
		}
	}
	message := websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
	sub.conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(writeWait))
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := make([]*subscriber, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()
	for _, sub := range subs {
		h.remove(sub)
	}
}
