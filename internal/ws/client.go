package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/battleship/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Send pings with this period; must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound message size
	maxMessageSize = 8192

	// DefaultSendBuffer is the outbound queue length per connection
	DefaultSendBuffer = 256
)

// Client is one WebSocket connection of an authenticated user
type Client struct {
	conn        *websocket.Conn
	user        model.User
	connectedAt time.Time
	logger      *slog.Logger

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

// newClient creates a client with a bounded outbound queue
func newClient(conn *websocket.Conn, user model.User, bufferSize int, logger *slog.Logger) *Client {
	if bufferSize <= 0 {
		bufferSize = DefaultSendBuffer
	}
	return &Client{
		conn:        conn,
		user:        user,
		connectedAt: time.Now(),
		logger:      logger.With(slog.String("user_id", string(user.ID))),
		send:        make(chan []byte, bufferSize),
	}
}

// User returns the authenticated user of the connection
func (c *Client) User() model.User {
	return c.user
}

// Send queues a frame without blocking
// When the queue is full the oldest frame is dropped
func (c *Client) Send(frame []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	for {
		select {
		case c.send <- frame:
			return
		default:
		}
		select {
		case <-c.send:
			c.logger.Warn("ws frame dropped - client buffer full")
		default:
		}
	}
}

// close stops the write pump once the queue is drained
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// readPump delivers inbound frames to handle until the connection fails
func (c *Client) readPump(handle func(c *Client, messageType int, data []byte)) {
	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error("ws failed to set read deadline", slog.Any("error", err))
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				c.logger.Warn("ws read failed", slog.Any("error", err))
			}
			return
		}
		handle(c, messageType, data)
	}
}

// writePump writes queued frames and keepalive pings to the peer
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Queue closed, say goodbye
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.logger.Warn("ws write failed", slog.Any("error", err))
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
