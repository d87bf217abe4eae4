// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	clientSendSize = 16
)

// wsEvent is the message pushed to websocket subscribers for every
// fullscreen change or error notification.
type wsEvent struct {
	Type     string    `json:"type"`
	DOMEvent string    `json:"dom_event"`
	At       time.Time `json:"at"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The daemon binds to loopback or trusted LAN interfaces only.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// hub fans controller notifications out to websocket clients. Slow
// clients get messages dropped rather than blocking the notifier.
type hub struct {
	mu     sync.Mutex
	conns  map[*websocket.Conn]chan []byte
	closed bool
}

func newHub() *hub {
	return &hub{conns: make(map[*websocket.Conn]chan []byte)}
}

func (h *hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		_ = conn.Close()
		return
	}
	ch := make(chan []byte, clientSendSize)
	h.conns[conn] = ch
	go writeLoop(conn, ch)
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		close(ch)
	}
}

func (h *hub) broadcast(ev wsEvent) {
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.conns {
		select {
		case ch <- b:
		default:
		}
	}
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for conn, ch := range h.conns {
		delete(h.conns, conn)
		close(ch)
	}
}

// writeLoop drains one client's send channel. Closing the channel sends
// a close frame and tears the connection down.
func writeLoop(conn *websocket.Conn, ch chan []byte) {
	defer func() { _ = conn.Close() }()
	for b := range ch {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			return
		}
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// handleEvents upgrades the connection and streams fullscreen
// notifications until the client disconnects.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug().Err(err).
			Str("event", "api.ws.upgrade_failed").Msg("websocket upgrade failed")
		return
	}

	s.hub.add(conn)

	// Read loop exists only to observe the client closing.
	go func() {
		defer s.hub.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
