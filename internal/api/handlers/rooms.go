package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/driftchat/backend/internal/rooms"
)

// GetRoom returns a persisted room record with its seed message. Only
// the two participants may read it.
func GetRoom(store *rooms.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		room, err := store.GetRoom(c.Request.Context(), id)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
				return
			}
			log.Printf("Failed to load room %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		userID := userIDFromContext(c)
		if room.User1ID != userID && room.User2ID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "not a participant"})
			return
		}

		c.JSON(http.StatusOK, room)
	}
}
