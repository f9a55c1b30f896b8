package ws

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jmoiron/sqlx"

	"github.com/driftchat/backend/internal/accounts"
	"github.com/driftchat/backend/internal/auth"
	"github.com/driftchat/backend/internal/config"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin enforcement happens in middleware.WebSocketCORSCheck.
		return true
	},
}

// HandleRandomChatWS upgrades the connection, attaches the user's
// identity from their session token and registers the client with the
// hub. The matchmaking engine never sees an unauthenticated
// connection.
func HandleRandomChatWS(db *sqlx.DB, hub *Hub, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token required"})
			return
		}

		userID, err := auth.ParseUserToken(token, cfg.JWTSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		user, err := accounts.GetUserByID(db, userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}
		if user.IsBlocked {
			c.JSON(http.StatusForbidden, gin.H{"error": "account blocked"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] Upgrade error: %v", err)
			return
		}

		client := &Client{
			hub:              hub,
			conn:             conn,
			connID:           uuid.NewString(),
			send:             make(chan []byte, 256),
			userID:           user.ID,
			displayName:      user.DisplayName,
			ageBand:          user.AgeBand.String,
			wantsAgeFilter:   user.WantsAgeFilter,
			maxMessageLength: cfg.MaxMessageLength,
		}

		hub.register <- client

		accounts.TouchLastActive(db, user.ID)

		go client.writePump()
		go client.readPump()
	}
}
