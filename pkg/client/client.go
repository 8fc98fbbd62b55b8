package client

import (
	"qsmart/qsmart-crowd-server/pkg/msg"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 8192
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	id string

	// Location whose status this client watches. Only touched by the
	// hub goroutine after the client is registered.
	location string

	// The websocket connection.
	conn *websocket.Conn

	// Buffered channel of outbound messages.
	sendWsMessage chan *msg.WsMessage

	// Closed when the connection should shut down.
	close     chan struct{}
	closeOnce sync.Once

	hub *Hub

	logger *zap.SugaredLogger
}

func NewClient(conn *websocket.Conn, location string, hub *Hub) *Client {
	id := uuid.NewString()
	return &Client{
		id:            id,
		location:      strings.TrimSpace(location),
		conn:          conn,
		sendWsMessage: make(chan *msg.WsMessage, 64),
		close:         make(chan struct{}),
		hub:           hub,
		logger:        hub.logger.With("clientId", id),
	}
}

func (c *Client) Run() {
	c.hub.register <- c

	// Allow collection of memory referenced by the caller by doing all
	// work in new goroutines.
	go c.writePump()
	go c.readPump()
}

// TryClose asks the write pump to send a close frame and stop. Safe to
// call more than once.
func (c *Client) TryClose() {
	c.closeOnce.Do(func() {
		close(c.close)
	})
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	pongWait := c.hub.pingInterval * 5 / 2
	c.conn.SetReadLimit(maxMessageSize)

	// Heartbeat. Close connection if client does not respond to ping for too long.
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		wsMessage := &msg.WsMessage{}
		if err := c.conn.ReadJSON(wsMessage); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warnf("read failed %v", err)
			} else {
				c.logger.Debugf("read closing %v", err)
			}
			return
		}

		c.hub.wsRequest <- &ClientRequest{client: c, wsMessage: wsMessage}
	}
}

func (c *Client) writePump() {
	pingTicker := time.NewTicker(c.hub.pingInterval)

	defer func() {
		pingTicker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case wsMessage := <-c.sendWsMessage:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(wsMessage); err != nil {
				c.logger.Errorf("cannot write json to ws conn %v", err)
				return
			}

		case <-c.close:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case <-pingTicker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debugf("ping failed %v", err)
				return
			}
		}
	}
}
