// Package websocket streams one optimization run's generation-by-generation
// progress to a single browser tab, adapted from the game server's
// Client/Hub split (tw-backend/cmd/game-server/websocket) but one-directional
// (server -> client only, no command protocol) since a progress viewer never
// talks back.
package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

// ProgressMessage is one generation's snapshot, or a terminal "done"/"error"
// frame.
type ProgressMessage struct {
	Type            string  `json:"type"`
	Generation      int     `json:"generation"`
	BestFitness     float64 `json:"bestFitness,omitempty"`
	AvgFitness      float64 `json:"avgFitness,omitempty"`
	FitnessVariance float64 `json:"fitnessVariance,omitempty"`
	Message         string  `json:"message,omitempty"`
}

// Client wraps one progress-stream websocket connection.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	mu       sync.Mutex
	isClosed bool
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{hub: hub, conn: conn, send: make(chan []byte, 64)}
}

// SendProgress pushes one frame to the client. Never blocks: a slow client
// drops frames rather than stalling the optimization run.
func (c *Client) SendProgress(msg ProgressMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Warn().Err(err).Msg("progress stream: failed to encode frame")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isClosed {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Warn().Msg("progress stream: dropped frame, client too slow")
	}
}

// Close closes the client's send channel, ending its WritePump.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isClosed {
		close(c.send)
		c.isClosed = true
	}
}

// ReadPump discards client input (pings aside); a progress viewer never
// sends commands, but it must read to observe close/ping control frames.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// WritePump pumps queued frames to the underlying connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
