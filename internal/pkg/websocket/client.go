package websocket

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/yigit/marksheet/internal/app/models"
	"github.com/yigit/marksheet/internal/pkg/events"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Clients only listen; anything they send is read and discarded
	maxMessageSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dashboards are served from other origins; the session token is the gate
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is a middleman between the websocket connection and its bus subscription
type Client struct {
	hub *Hub

	id string

	// The WebSocket connection
	conn *websocket.Conn

	// Events relevant to session, in publish order
	sub *events.Subscription

	session models.SessionDescriptor

	stopOnce sync.Once

	// Closed when writePump has returned
	writerDone chan struct{}

	logger zerolog.Logger
}

// stop releases the subscription and closes the connection; safe to call twice
func (c *Client) stop() {
	c.stopOnce.Do(func() {
		c.sub.Close()
		_ = c.conn.Close()
	})
}

func (c *Client) leave() {
	if !c.hub.enqueue(c.hub.unregister, c) {
		c.stop()
	}
}

// readPump keeps the read deadline alive and notices disconnects
func (c *Client) readPump() {
	defer c.leave()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warn().Err(err).Str("clientID", c.id).Msg("Unexpected WebSocket close")
			} else {
				c.logger.Debug().Err(err).Str("clientID", c.id).Msg("WebSocket read ended")
			}
			return
		}
	}
}

// writePump forwards subscription events to the connection. An event that
// deletes the session's owner is followed by session:revoked and a close.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.leave()
		close(c.writerDone)
	}()

	for {
		select {
		case ev, ok := <-c.sub.C():
			if !ok {
				c.closeWith(websocket.CloseGoingAway, "server shutting down")
				return
			}
			if err := c.write(ev); err != nil {
				return
			}
			if events.Revokes(c.session, ev) {
				_ = c.write(events.NewSessionRevoked("account removed"))
				c.closeWith(websocket.ClosePolicyViolation, "session revoked")
				c.logger.Info().Str("clientID", c.id).Str("subject", c.session.SubjectID()).Msg("Session revoked")
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

func (c *Client) write(ev events.Event) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(ev); err != nil {
		c.logger.Debug().Err(err).Str("clientID", c.id).Str("event", string(ev.Kind)).Msg("WebSocket write failed")
		return err
	}
	return nil
}

func (c *Client) closeWith(code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
