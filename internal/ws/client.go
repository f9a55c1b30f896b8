package ws

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/driftchat/backend/internal/matchmaking"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	// Large enough for any legal send_message payload.
	maxMessageSize = 8192
)

// Client represents one connected websocket client. Identity fields
// are attached at upgrade time by the auth layer and never change for
// the life of the connection.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	connID string
	send   chan []byte

	userID         int
	displayName    string
	ageBand        string
	wantsAgeFilter bool

	maxMessageLength int
}

// waitingEntry builds the matchmaking entry for this connection.
func (c *Client) waitingEntry() matchmaking.WaitingEntry {
	return matchmaking.WaitingEntry{
		ConnID:         c.connID,
		UserID:         c.userID,
		DisplayName:    c.displayName,
		AgeBand:        c.ageBand,
		WantsAgeFilter: c.wantsAgeFilter,
	}
}

func (c *Client) sender() matchmaking.MessageSender {
	return matchmaking.MessageSender{ID: c.userID, DisplayName: c.displayName}
}

// readPump reads inbound events and dispatches them to the engine.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error (unexpected) for user %d: %v", c.userID, err)
			}
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}

		c.handleMessage(msg)
	}
}

// handleMessage routes one inbound event.
func (c *Client) handleMessage(msg WSMessage) {
	ctx := context.Background()

	switch msg.Type {
	case matchmaking.EventFindRandomChat:
		c.hub.engine.FindRandomChat(ctx, c.waitingEntry())

	case matchmaking.EventSkipRandomChat:
		c.hub.engine.Skip(ctx, c.connID)

	case matchmaking.EventStartAiChat:
		c.hub.engine.StartAiChat(ctx, c.connID)

	case matchmaking.EventSendMessage:
		var data matchmaking.MessagePayload
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return
		}
		if c.maxMessageLength > 0 && len(data.Content) > c.maxMessageLength {
			return
		}
		c.hub.engine.RelayMessage(c.connID, data, c.sender())

	default:
		c.sendError("Unknown message type")
	}
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed — connection is being cleaned up.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error for user %d: %v", c.userID, err)
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

// sendError sends an error event to the client
func (c *Client) sendError(message string) {
	data, _ := json.Marshal(Event{Type: "error", Data: message})
	select {
	case c.send <- data:
	default:
	}
}
