package websocket

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"plantgen-backend/internal/metrics"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Hub tracks every open progress-stream connection, only for the active
// connection count it reports to metrics: each connection otherwise runs
// independently, since one connection corresponds to exactly one
// optimization run and clients never need each other's frames.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	clients    map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run processes register/unregister events until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = true
			metrics.SetActiveProgressConnections(int64(len(h.clients)))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				c.Close()
				metrics.SetActiveProgressConnections(int64(len(h.clients)))
			}
		}
	}
}

// Upgrade promotes an HTTP request to a websocket connection and registers
// the resulting client with the hub.
func (h *Hub) Upgrade(w http.ResponseWriter, r *http.Request) (*Client, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	client := newClient(h, conn)
	h.register <- client
	go client.WritePump()
	go client.ReadPump()
	return client, nil
}
