package ws

import (
	"fmt"
	"sync"
	"time"

	"va-backend/internal/domain"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBuffer     = 16
)

// Client is a websocket-backed session. Outbound events go through a
// buffered channel so a slow reader never blocks a broadcast.
type Client struct {
	id     string
	conn   *websocket.Conn
	hub    *Hub
	send   chan domain.NotificationEvent
	done   chan struct{}
	once   sync.Once
	logger *zap.Logger
}

func newClient(id string, conn *websocket.Conn, hub *Hub, logger *zap.Logger) *Client {
	return &Client{
		id:     id,
		conn:   conn,
		hub:    hub,
		send:   make(chan domain.NotificationEvent, sendBuffer),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// ID returns the session id
func (c *Client) ID() string {
	return c.id
}

// Send queues an event for delivery. Returns an error when the session is
// gone or its buffer is full; the event is then lost for this recipient.
func (c *Client) Send(evt domain.NotificationEvent) error {
	select {
	case <-c.done:
		return fmt.Errorf("session %s is closed", c.id)
	default:
	}

	select {
	case c.send <- evt:
		return nil
	default:
		return fmt.Errorf("send buffer full for session %s", c.id)
	}
}

func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
		c.hub.Disconnect(c.id)
		c.conn.Close()
	})
}

// readPump discards inbound frames and tears the session down when the
// transport closes for any reason
func (c *Client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket read error",
					zap.String("session_id", c.id), zap.Error(err))
			}
			return
		}
	}
}

// writePump serializes queued events onto the connection and keeps it alive
// with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case evt := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(evt); err != nil {
				c.logger.Debug("websocket write error",
					zap.String("session_id", c.id), zap.Error(err))
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
