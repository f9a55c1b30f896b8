package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/driftchat/backend/internal/accounts"
	"github.com/driftchat/backend/internal/auth"
	"github.com/driftchat/backend/internal/config"
)

// CreateGuestSession creates an ephemeral guest user and issues a
// session token for it. This is the only way random-chat clients
// obtain an identity.
func CreateGuestSession(db *sqlx.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			DisplayName    string `json:"display_name" binding:"required"`
			AgeBand        string `json:"age_band,omitempty"`
			WantsAgeFilter bool   `json:"wants_age_filter,omitempty"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "display_name required"})
			return
		}

		displayName := strings.TrimSpace(req.DisplayName)
		if displayName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "display_name required"})
			return
		}
		if !accounts.IsValidAgeBand(req.AgeBand) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown age_band"})
			return
		}

		user, err := accounts.CreateGuest(db, displayName, req.AgeBand, req.WantsAgeFilter)
		if err != nil {
			log.Printf("Failed to create guest user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		signed, err := auth.IssueUserToken(user.ID, cfg.JWTSecret, time.Duration(cfg.GuestTokenHours)*time.Hour)
		if err != nil {
			log.Printf("Failed to sign token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": signed, "user": user})
	}
}

// AuthRequired validates the Bearer token and stores the user id in
// the request context.
func AuthRequired(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}

		userID, err := auth.ParseUserToken(strings.TrimPrefix(header, "Bearer "), cfg.JWTSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// userIDFromContext returns the authenticated user id set by
// AuthRequired.
func userIDFromContext(c *gin.Context) int {
	return c.GetInt("user_id")
}
