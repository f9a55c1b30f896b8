package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/driftchat/backend/internal/api/handlers"
	"github.com/driftchat/backend/internal/config"
	"github.com/driftchat/backend/internal/middleware"
	"github.com/driftchat/backend/internal/rooms"
	"github.com/driftchat/backend/internal/ws"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *sqlx.DB, rdb *redis.Client, store *rooms.Store, hub *ws.Hub, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		// Guest session issuance
		v1.POST("/auth/guest", handlers.CreateGuestSession(db, cfg))

		// Random chat
		rc := v1.Group("/random-chat")
		{
			rc.GET("/status", handlers.RandomChatStatus(rdb))
			rc.GET("/ws", middleware.WebSocketCORSCheck(cfg), ws.HandleRandomChatWS(db, hub, cfg))
		}

		// Authenticated user endpoints
		me := v1.Group("/me", handlers.AuthRequired(cfg))
		{
			me.PUT("/display-name", handlers.UpdateDisplayName(db))
			me.PUT("/preferences", handlers.UpdatePreferences(db))
		}

		v1.GET("/rooms/:id", handlers.AuthRequired(cfg), handlers.GetRoom(store))

		// Admin moderation endpoints
		adminGroup := v1.Group("/admin", handlers.AdminAuth(db))
		{
			adminGroup.GET("/users", handlers.AdminListUsers(db))
			adminGroup.POST("/users/:id/block", handlers.AdminBlockUser(db))
			adminGroup.GET("/rooms", handlers.AdminListRooms(store))
			adminGroup.GET("/audit", handlers.AdminAuditLogs(db))
			adminGroup.GET("/config", handlers.AdminGetConfig(db))
			adminGroup.PUT("/config", handlers.AdminUpdateConfig(db))
		}
	}
}
