package server

import (
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// WebSocket heartbeat settings to detect disconnected clients
	pingInterval = 10 * time.Second
	pongWait     = 60 * time.Second
	writeWait    = 10 * time.Second
)

// Client represents a single connected socket.
type Client struct {
	conn *websocket.Conn
	send chan []byte   // outgoing message buffer
	id   string        // unique connection id
	done chan struct{} // signals the write pump to terminate
}

// NewClient wraps an upgraded connection.
func NewClient(conn *websocket.Conn, id string) *Client {
	return &Client{
		conn: conn,
		send: make(chan []byte, 256),
		id:   id,
		done: make(chan struct{}),
	}
}

// ReadPump reads messages until the connection drops, then unregisters the
// client and signals the write pump.
func (c *Client) ReadPump(s *GameServer) {
	defer func() {
		s.unregisterClient(c)
		close(c.done)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Client %s: unexpected close: %v", c.id, err)
			}
			break
		}
		s.handleClientMessage(c, message)
	}
}

// WritePump drains the send buffer to the socket and keeps the heartbeat
// going.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Client %s: write error: %v", c.id, err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
