package share

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"SketchBoard/internal/state"
)

// Event is one message on the spectator feed. "stroke" carries a newly
// committed stroke; "refresh" tells viewers the history changed some other
// way (undo, redo, clear) and the snapshot should be refetched.
type Event struct {
	Type   string        `json:"type"`
	Stroke *state.Stroke `json:"stroke,omitempty"`
}

// Hub fans events out to every connected viewer. Viewers are read-only;
// nothing they send is interpreted.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
	log   *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]bool),
		log:   logger,
	}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = true
	h.log.Info("viewer connected", "remote", conn.RemoteAddr().String(), "viewers", len(h.conns))
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[conn] {
		delete(h.conns, conn)
		h.log.Info("viewer disconnected", "remote", conn.RemoteAddr().String(), "viewers", len(h.conns))
	}
}

// Count returns the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Broadcast sends ev to every viewer, dropping connections that fail.
func (h *Hub) Broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(ev); err != nil {
			h.log.Warn("dropping viewer", "remote", conn.RemoteAddr().String(), "err", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.Close()
		delete(h.conns, conn)
	}
}
