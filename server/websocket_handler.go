package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	errs "github.com/worklinehq/workline/errors"
	"github.com/worklinehq/workline/models"
	"github.com/worklinehq/workline/services"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

// handleWebSocket upgrades the connection and runs the read loop. The route
// sits behind Authorize, so an anonymous attempt gets a 401 before any
// upgrade happens and is never registered.
func (s *Server) handleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("websocket upgrade failed for user %d: %v", user.ID, err)
			return
		}

		client := NewClient(user.ID, conn)
		s.Hub.Register(client)
		log.Printf("user %d connected (%s)", user.ID, client.ID)

		go client.writePump()
		client.readPump(s.Hub, s.MessageService)
	}
}

// readPump consumes inbound frames until the transport closes. A malformed
// or invalid frame is logged and skipped, it does not end the session.
func (c *Client) readPump(hub *Hub, messageService services.MessageService) {
	defer func() {
		hub.Unregister(c)
		c.conn.Close()
		log.Printf("user %d disconnected (%s)", c.UserID, c.ID)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read error: %v", err)
			}
			return
		}

		var frame models.InboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			log.Printf("malformed frame from user %d: %v", c.UserID, err)
			continue
		}
		if frame.RecipientID == 0 {
			log.Printf("malformed frame from user %d: missing recipient_id", c.UserID)
			continue
		}

		msg, err := messageService.SendMessage(c.UserID, frame.RecipientID, frame.Text)
		if err != nil {
			log.Printf("failed to send message from user %d: %v", c.UserID, err)
			continue
		}

		hub.SendToUsers(msg, msg.SenderID, msg.RecipientID)
	}
}

// writePump serializes all writes to the connection and keeps it alive with
// pings. It exits when the send channel closes.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Printf("websocket write error: %v", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
