package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/driftchat/backend/internal/matchmaking"
)

// RandomChatStatus reports the live queue depth and active session
// count from the gauges the engine publishes to Redis.
func RandomChatStatus(rdb *redis.Client) gin.HandlerFunc {
	presence := matchmaking.NewPresence(rdb)
	return func(c *gin.Context) {
		waiting, sessions := presence.ReadStats(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"waiting":         waiting,
			"active_sessions": sessions,
		})
	}
}
