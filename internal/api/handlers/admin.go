package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/driftchat/backend/internal/accounts"
	"github.com/driftchat/backend/internal/admin"
	"github.com/driftchat/backend/internal/rooms"
)

// AdminAuth validates the X-Admin-Username / X-Admin-Token header pair
// against the stored bcrypt hash and records the account in the
// request context.
func AdminAuth(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetHeader("X-Admin-Username")
		token := c.GetHeader("X-Admin-Token")
		if username == "" || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "admin credentials required"})
			c.Abort()
			return
		}

		account, err := admin.ValidateAdminCredentials(db, username, token)
		if err != nil {
			admin.LogAdminAction(db, username, c.ClientIP(), c.FullPath(), "auth", nil, false)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			c.Abort()
			return
		}

		c.Set("admin_username", account.Username)
		c.Next()
	}
}

func adminUsername(c *gin.Context) string {
	return c.GetString("admin_username")
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// AdminListUsers returns recent users.
func AdminListUsers(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c)
		users, err := accounts.ListUsers(db, limit, offset)
		if err != nil {
			log.Printf("[ADMIN] Failed to list users: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

// AdminBlockUser blocks or unblocks a user account.
func AdminBlockUser(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		var req struct {
			Blocked bool   `json:"blocked"`
			Reason  string `json:"reason,omitempty"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		err = accounts.SetBlocked(db, userID, req.Blocked, req.Reason)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			log.Printf("[ADMIN] Failed to block user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		admin.LogAdminAction(db, adminUsername(c), c.ClientIP(), c.FullPath(), "block_user",
			map[string]interface{}{"user_id": userID, "blocked": req.Blocked, "reason": req.Reason}, true)

		c.JSON(http.StatusOK, gin.H{"user_id": userID, "blocked": req.Blocked})
	}
}

// AdminListRooms returns recent persisted rooms.
func AdminListRooms(store *rooms.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c)
		list, err := store.ListRooms(c.Request.Context(), limit, offset)
		if err != nil {
			log.Printf("[ADMIN] Failed to list rooms: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"rooms": list})
	}
}

// AdminAuditLogs returns recent admin audit entries.
func AdminAuditLogs(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c)
		logs, err := admin.GetAdminAuditLogs(db, limit, offset)
		if err != nil {
			log.Printf("[ADMIN] Failed to list audit logs: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"logs": logs})
	}
}

// AdminGetConfig returns all runtime config entries.
func AdminGetConfig(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		configs, err := admin.GetAllRuntimeConfig(db)
		if err != nil {
			log.Printf("[ADMIN] Failed to load runtime config: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"config": configs})
	}
}

// AdminUpdateConfig updates one runtime config value.
func AdminUpdateConfig(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Key   string `json:"key" binding:"required"`
			Value string `json:"value" binding:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "key and value required"})
			return
		}

		if err := admin.UpdateRuntimeConfigValue(db, req.Key, req.Value, adminUsername(c)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		admin.LogAdminAction(db, adminUsername(c), c.ClientIP(), c.FullPath(), "update_config",
			map[string]interface{}{"key": req.Key, "value": req.Value}, true)

		c.JSON(http.StatusOK, gin.H{"key": req.Key, "value": req.Value})
	}
}
