// Package api streams live run statistics to observers over WebSocket.
// Read-only: observers receive one JSON message per tick and send nothing.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Observer broadcasts tick statistics to connected WebSocket clients.
// Broadcast is called from the simulation loop; connection handling runs on
// the HTTP server's goroutines, so the client set is mutex-guarded.
type Observer struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewObserver creates an observer with no clients.
func NewObserver() *Observer {
	return &Observer{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

// Handler upgrades an HTTP request to a WebSocket subscription.
func (o *Observer) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := o.upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Debug("websocket upgrade failed", "error", err)
			return
		}

		o.mu.Lock()
		o.clients[conn] = true
		n := len(o.clients)
		o.mu.Unlock()
		slog.Info("observer connected", "remote", conn.RemoteAddr(), "clients", n)

		// Drain (and discard) client frames so pings and closes are
		// processed; exit drops the subscription.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					o.drop(conn)
					return
				}
			}
		}()
	}
}

// Broadcast sends v as JSON to every connected client, dropping clients whose
// writes fail.
func (o *Observer) Broadcast(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		slog.Error("observer marshal failed", "error", err)
		return
	}

	o.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(o.clients))
	for c := range o.clients {
		conns = append(conns, c)
	}
	o.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			slog.Debug("observer write failed", "remote", c.RemoteAddr(), "error", err)
			o.drop(c)
		}
	}
}

// ClientCount returns the number of connected observers.
func (o *Observer) ClientCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.clients)
}

// Close disconnects every client.
func (o *Observer) Close() {
	o.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(o.clients))
	for c := range o.clients {
		conns = append(conns, c)
	}
	o.clients = make(map[*websocket.Conn]bool)
	o.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
}

func (o *Observer) drop(conn *websocket.Conn) {
	o.mu.Lock()
	delete(o.clients, conn)
	o.mu.Unlock()
	conn.Close()
}

// Serve starts an HTTP server exposing the observer at /live. It blocks, so
// callers run it in a goroutine.
func (o *Observer) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/live", o.Handler())
	slog.Info("observer listening", "addr", addr)
	return http.ListenAndServe(addr, mux)
}
