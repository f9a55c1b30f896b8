package models

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// User represents an account on the platform. Random-chat users are
// typically ephemeral guests; AgeBand and WantsAgeFilter feed the
// compatibility matcher.
type User struct {
	ID             int            `db:"id" json:"id"`
	DisplayName    string         `db:"display_name" json:"display_name"`
	AgeBand        sql.NullString `db:"age_band" json:"age_band,omitempty"`
	WantsAgeFilter bool           `db:"wants_age_filter" json:"wants_age_filter"`
	IsGuest        bool           `db:"is_guest" json:"is_guest"`
	IsBlocked      bool           `db:"is_blocked" json:"is_blocked"`
	BlockReason    sql.NullString `db:"block_reason" json:"block_reason,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	LastActive     sql.NullTime   `db:"last_active" json:"last_active,omitempty"`
}

// ChatRoom is the durable record created once per successful pairing.
// Only the seed message is persisted for it; the conversation itself
// is ephemeral.
type ChatRoom struct {
	ID        string    `db:"id" json:"id"`
	User1ID   int       `db:"user1_id" json:"user1_id"`
	User2ID   int       `db:"user2_id" json:"user2_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ChatMessage is a stored message. In practice only the system seed
// message written at room creation exists per room.
type ChatMessage struct {
	ID        int           `db:"id" json:"id"`
	RoomID    string        `db:"room_id" json:"room_id"`
	SenderID  sql.NullInt64 `db:"sender_id" json:"sender_id,omitempty"`
	Content   string        `db:"content" json:"content"`
	IsSystem  bool          `db:"is_system" json:"is_system"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

// AdminAccount represents an admin moderation account
type AdminAccount struct {
	Username    string         `db:"username" json:"username"`
	DisplayName string         `db:"display_name" json:"display_name"`
	TokenHash   string         `db:"token_hash" json:"-"`
	Roles       pq.StringArray `db:"roles" json:"roles"`
	AllowedIPs  pq.StringArray `db:"allowed_ips" json:"allowed_ips"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// AdminAudit represents an admin action audit log entry
type AdminAudit struct {
	ID            int       `db:"id" json:"id"`
	AdminUsername string    `db:"admin_username" json:"admin_username"`
	IP            string    `db:"ip" json:"ip"`
	Route         string    `db:"route" json:"route"`
	Action        string    `db:"action" json:"action"`
	Details       []byte    `db:"details" json:"details"`
	Success       bool      `db:"success" json:"success"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// RuntimeConfig represents a runtime-tunable config entry stored in
// the database
type RuntimeConfig struct {
	Key         string       `db:"key" json:"key"`
	Value       string       `db:"value" json:"value"`
	ValueType   string       `db:"value_type" json:"value_type"`
	Description string       `db:"description" json:"description"`
	UpdatedBy   string       `db:"updated_by" json:"updated_by"`
	UpdatedAt   sql.NullTime `db:"updated_at" json:"updated_at"`
}
