package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/driftchat/backend/internal/accounts"
)

// UpdateDisplayName changes the authenticated user's display name.
// Takes effect for pairings made after the change; live sessions keep
// the name they were created with.
func UpdateDisplayName(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			DisplayName string `json:"display_name" binding:"required"`
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

		userID := userIDFromContext(c)
		if err := accounts.UpdateDisplayName(db, userID, displayName); err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			log.Printf("Failed to update display name for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"display_name": displayName})
	}
}

// UpdatePreferences changes the authenticated user's matchmaking
// preferences.
func UpdatePreferences(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			AgeBand        string `json:"age_band"`
			WantsAgeFilter bool   `json:"wants_age_filter"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		if !accounts.IsValidAgeBand(req.AgeBand) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown age_band"})
			return
		}

		userID := userIDFromContext(c)
		if err := accounts.UpdatePreferences(db, userID, req.AgeBand, req.WantsAgeFilter); err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			log.Printf("Failed to update preferences for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"age_band": req.AgeBand, "wants_age_filter": req.WantsAgeFilter})
	}
}
