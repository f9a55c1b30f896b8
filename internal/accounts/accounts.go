package accounts

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	"github.com/driftchat/backend/internal/models"
)

// Age bands users may declare for the matchmaking age filter.
var ValidAgeBands = []string{"13-17", "18-25", "26-35", "36-50", "50+"}

// IsValidAgeBand reports whether band is empty (unset) or a known
// band.
func IsValidAgeBand(band string) bool {
	if band == "" {
		return true
	}
	for _, b := range ValidAgeBands {
		if b == band {
			return true
		}
	}
	return false
}

// CreateGuest inserts a new guest user and returns it.
func CreateGuest(db *sqlx.DB, displayName, ageBand string, wantsAgeFilter bool) (*models.User, error) {
	var band sql.NullString
	if ageBand != "" {
		band = sql.NullString{String: ageBand, Valid: true}
	}

	var id int
	err := db.QueryRow(`
		INSERT INTO users (display_name, age_band, wants_age_filter, is_guest, created_at)
		VALUES ($1, $2, $3, true, NOW())
		RETURNING id
	`, displayName, band, wantsAgeFilter).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}

	return GetUserByID(db, id)
}

// GetUserByID retrieves a user by id
func GetUserByID(db *sqlx.DB, id int) (*models.User, error) {
	var user models.User
	err := db.Get(&user, `
		SELECT id, display_name, age_band, wants_age_filter, is_guest, is_blocked, block_reason, created_at, last_active
		FROM users WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateDisplayName updates a user's display name
func UpdateDisplayName(db *sqlx.DB, id int, displayName string) error {
	res, err := db.Exec(`UPDATE users SET display_name = $1 WHERE id = $2`, displayName, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdatePreferences updates the matchmaking preferences the matcher
// consumes.
func UpdatePreferences(db *sqlx.DB, id int, ageBand string, wantsAgeFilter bool) error {
	var band sql.NullString
	if ageBand != "" {
		band = sql.NullString{String: ageBand, Valid: true}
	}
	res, err := db.Exec(`
		UPDATE users SET age_band = $1, wants_age_filter = $2 WHERE id = $3
	`, band, wantsAgeFilter, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// TouchLastActive records user activity; failures are logged, not
// surfaced.
func TouchLastActive(db *sqlx.DB, id int) {
	if _, err := db.Exec(`UPDATE users SET last_active = NOW() WHERE id = $1`, id); err != nil {
		log.Printf("[ACCOUNTS] Failed to touch last_active for user %d: %v", id, err)
	}
}

// SetBlocked blocks or unblocks a user. Blocked users are refused at
// the websocket gate.
func SetBlocked(db *sqlx.DB, id int, blocked bool, reason string) error {
	var blockReason sql.NullString
	if blocked && reason != "" {
		blockReason = sql.NullString{String: reason, Valid: true}
	}
	res, err := db.Exec(`
		UPDATE users SET is_blocked = $1, block_reason = $2 WHERE id = $3
	`, blocked, blockReason, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListUsers returns users ordered by recency, for the admin API.
func ListUsers(db *sqlx.DB, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := db.Select(&users, `
		SELECT id, display_name, age_band, wants_age_filter, is_guest, is_blocked, block_reason, created_at, last_active
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	return users, err
}
