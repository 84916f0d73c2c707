// Package share serves a read-only view of the board on the local network:
// a websocket feed of committed strokes plus a PNG snapshot endpoint,
// advertised over mDNS. Viewers never mutate the drawing history.
package share

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/mdns"

	"SketchBoard/internal/state"
)

// URLScheme prefixes share links pasted between machines.
const URLScheme = "sketchboard://"

// Snapshot produces the current board as PNG bytes. It is called off the
// UI thread, so it must be safe for concurrent use.
type Snapshot func() ([]byte, error)

// Server exposes the spectator feed.
type Server struct {
	hub      *Hub
	snapshot Snapshot
	upgrader websocket.Upgrader
	httpSrv  *http.Server
	mdnsSrv  *mdns.Server
	port     int
	log      *slog.Logger
}

func NewServer(port int, snapshot Snapshot, logger *slog.Logger) *Server {
	s := &Server{
		hub:      NewHub(logger),
		snapshot: snapshot,
		upgrader: websocket.Upgrader{
			// Spectators connect from arbitrary LAN origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		port: port,
		log:  logger,
	}
	return s
}

// Handler returns the HTTP surface of the feed.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/board.png", s.handleSnapshot)
	return mux
}

// Start listens on the configured port and advertises the service over
// mDNS. It returns once the listener is up.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("share: listen on %d: %w", s.port, err)
	}
	s.httpSrv = &http.Server{Handler: s.Handler()}

	go func() {
		if err := s.httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("share server stopped", "err", err)
		}
	}()

	if srv, err := advertise(s.port); err != nil {
		// Discovery is best-effort; the share link still works.
		s.log.Warn("mdns advertise failed", "err", err)
	} else {
		s.mdnsSrv = srv
	}

	s.log.Info("share server listening", "port", s.port, "link", s.ShareLink())
	return nil
}

// ShareLink returns the link viewers use to reach this board.
func (s *Server) ShareLink() string {
	return fmt.Sprintf("%s%s:%d", URLScheme, outgoingIP(), s.port)
}

// Viewers returns the number of connected spectators.
func (s *Server) Viewers() int {
	return s.hub.Count()
}

// BroadcastStroke pushes a freshly committed stroke to every viewer.
func (s *Server) BroadcastStroke(st state.Stroke) {
	s.hub.Broadcast(Event{Type: "stroke", Stroke: &st})
}

// BroadcastRefresh tells viewers the history changed (undo, redo or clear)
// and the snapshot must be refetched.
func (s *Server) BroadcastRefresh() {
	s.hub.Broadcast(Event{Type: "refresh"})
}

// Close stops advertising and disconnects everything.
func (s *Server) Close() error {
	if s.mdnsSrv != nil {
		s.mdnsSrv.Shutdown()
	}
	s.hub.Close()
	if s.httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	s.hub.Add(conn)
	defer s.hub.Remove(conn)

	// Read loop only detects disconnects; viewer input is discarded.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	data, err := s.snapshot()
	if err != nil {
		s.log.Error("snapshot failed", "err", err)
		http.Error(w, "snapshot failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}
