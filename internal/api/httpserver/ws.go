package httpserver

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"locsmith/internal/usecase/notifier"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const wsWriteTimeout = 10 * time.Second

// wsHub tracks connected event-stream clients. Each connection gets its own
// send queue; a client that stops draining loses events instead of stalling
// the broadcast.
type wsHub struct {
	log   *slog.Logger
	mu    sync.Mutex
	conns map[*websocket.Conn]chan notifier.Event
}

func newWSHub(log *slog.Logger) *wsHub {
	return &wsHub{log: log, conns: map[*websocket.Conn]chan notifier.Event{}}
}

func (h *wsHub) add(conn *websocket.Conn) chan notifier.Event {
	ch := make(chan notifier.Event, 32)
	h.mu.Lock()
	h.conns[conn] = ch
	h.mu.Unlock()
	return ch
}

func (h *wsHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if ch, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		close(ch)
	}
	h.mu.Unlock()
	_ = conn.Close()
}

func (h *wsHub) broadcast(ev notifier.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.conns {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *wsHub) closeAll() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()
	for _, conn := range conns {
		h.remove(conn)
	}
}

// handleEvents upgrades to WebSocket and streams events as JSON objects.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	ch := s.ws.add(conn)

	// Writer: drain the send queue until the connection drops.
	go func() {
		for ev := range ch {
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(ev); err != nil {
				s.ws.remove(conn)
				return
			}
		}
	}()

	// Reader: clients send nothing meaningful; this just detects close.
	_ = conn.SetReadDeadline(time.Time{})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.ws.remove(conn)
			return
		}
	}
}
