package api

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	maxStreamConns = 4
	writeWait      = 10 * time.Second
	pingInterval   = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Renderers run locally or behind the operator's own proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleStream pushes the packed snapshot to a renderer client after every
// recompute, newest-wins: a slow client skips intermediate snapshots.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if atomic.AddInt32(&s.streamConns, 1) > maxStreamConns {
		atomic.AddInt32(&s.streamConns, -1)
		http.Error(w, "too many stream connections", http.StatusServiceUnavailable)
		return
	}
	defer atomic.AddInt32(&s.streamConns, -1)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("stream upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	slog.Info("stream client connected", "remote", r.RemoteAddr)

	snapshots, cancel := s.Eng.Subscribe()
	defer cancel()

	// Drain client frames so pong handling and close detection work.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			slog.Info("stream client disconnected", "remote", r.RemoteAddr)
			return
		case snap := <-snapshots:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.BinaryMessage, snap.Bytes()); err != nil {
				slog.Error("stream write failed", "error", err, "remote", r.RemoteAddr)
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
