package ws

import (
	"encoding/json"
	"time"

	"gigflow_backend/internal/logger"
	"gigflow_backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	EventNotification = "notification"

	maxMessageSize = 512
)

// ClientConfig holds the websocket keepalive timings.
type ClientConfig struct {
	WriteWait  time.Duration
	PongWait   time.Duration
	PingPeriod time.Duration
	SendBuffer int
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		WriteWait:  10 * time.Second,
		PongWait:   60 * time.Second,
		PingPeriod: 54 * time.Second,
		SendBuffer: 256,
	}
}

// Frame is the envelope for every server push.
type Frame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// NotificationFrameData is the client-facing shape of a pushed notification.
type NotificationFrameData struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Read      bool            `json:"read"`
}

func NewNotificationFrame(n *models.Notification) Frame {
	data := NotificationFrameData{
		ID:        n.ID,
		Type:      n.Type,
		Message:   n.Message,
		Timestamp: n.CreatedAt,
		Read:      n.IsRead,
	}
	if len(n.Data) > 0 {
		data.Data = json.RawMessage(n.Data)
	}
	return Frame{Event: EventNotification, Data: data}
}

// Client pumps one session's notifications onto a websocket connection.
// Only writePump writes to the connection.
type Client struct {
	session *Session
	manager *Manager
	conn    *websocket.Conn
	send    chan []byte
	cfg     ClientConfig
}

func newClient(manager *Manager, session *Session, conn *websocket.Conn, cfg ClientConfig) *Client {
	buffer := cfg.SendBuffer
	if buffer < 1 {
		buffer = 1
	}
	return &Client{
		session: session,
		manager: manager,
		conn:    conn,
		send:    make(chan []byte, buffer),
		cfg:     cfg,
	}
}

func (c *Client) run() {
	c.manager.OnNotification(c.session, c.deliver)
	go c.writePump()
	go c.readPump()
}

func (c *Client) deliver(n *models.Notification) {
	payload, err := json.Marshal(NewNotificationFrame(n))
	if err != nil {
		logger.Error("failed to encode notification frame", "notification_id", n.ID, "error", err)
		return
	}

	select {
	case c.send <- payload:
	default:
		logger.Warn("websocket send buffer full, disconnecting",
			"user_id", c.session.UserID, "session_id", c.session.ID)
		c.manager.Disconnect(c.session)
	}
}

// readPump only services control frames; clients do not send data.
func (c *Client) readPump() {
	defer c.manager.Disconnect(c.session)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read error", "user_id", c.session.UserID, "error", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.manager.Disconnect(c.session)
	}()

	for {
		select {
		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger.Warn("websocket write error", "user_id", c.session.UserID, "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.session.Done():
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
