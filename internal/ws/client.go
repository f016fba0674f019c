package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tradewire/bookfeed/internal/domain/book"
	"github.com/tradewire/bookfeed/pkg/config"
	"github.com/tradewire/bookfeed/pkg/logger"
)

// clientRequest is the wire shape of every client-to-hub command.
type clientRequest struct {
	Op     string          `json:"op"` // "join", "leave", "correction"
	Symbol string          `json:"symbol"`
	Ask    *book.Candidate `json:"ask,omitempty"`
	Bid    *book.Candidate `json:"bid,omitempty"`
}

// Client is one WebSocket connection attached to the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	id   string

	cfg    config.WSConfig
	logger logger.Interface
}

// NewClient wraps an upgraded connection. The caller starts the pumps.
func NewClient(hub *Hub, conn *websocket.Conn, cfg config.WSConfig, logger logger.Interface) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, cfg.SendBufferSize),
		id:     conn.RemoteAddr().String(),
		cfg:    cfg,
		logger: logger,
	}
}

// Handler returns the WebSocket upgrade endpoint for the hub.
func Handler(hub *Hub, cfg config.WSConfig, logger logger.Interface) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			// Origin policy is enforced by the CORS middleware in front.
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error(err)
			return
		}

		client := NewClient(hub, conn, cfg, logger)
		hub.Add(client)

		// The request context dies when this handler returns; the pumps
		// outlive it on the hijacked connection.
		go client.writePump()
		go client.readPump(context.Background())
	}
}

// readPump decodes client commands and dispatches them to the hub. It owns
// the connection's read side and tears the client down when the peer goes
// away.
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.hub.Remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongTimeout))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("read failed",
					logger.Field{Key: "client", Value: c.id},
					logger.Field{Key: "error", Value: err.Error()},
				)
			}
			return
		}

		var req clientRequest
		if err := json.Unmarshal(message, &req); err != nil {
			c.logger.Debug("invalid client message", logger.Field{Key: "client", Value: c.id})
			continue
		}

		switch req.Op {
		case "join":
			c.hub.Join(ctx, c, req.Symbol)
		case "leave":
			c.hub.Leave(c, req.Symbol)
		case "correction":
			c.hub.Correction(ctx, c, req.Symbol, req.Ask, req.Bid)
		default:
			c.logger.Debug("unknown op",
				logger.Field{Key: "client", Value: c.id},
				logger.Field{Key: "op", Value: req.Op},
			)
		}
	}
}

// writePump drains the send buffer onto the connection and keeps the peer
// alive with periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
