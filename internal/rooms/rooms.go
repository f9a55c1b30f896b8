package rooms

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/driftchat/backend/internal/models"
)

// Room is a persisted chat room together with its seed message.
type Room struct {
	models.ChatRoom
	SeedMessage string `json:"seed_message"`
}

// Store persists random-chat rooms. A successful match writes the room
// row and its system seed message in one transaction; nothing else is
// ever written per room.
type Store struct {
	db       *sqlx.DB
	rdb      *redis.Client
	cacheTTL time.Duration
}

// NewStore creates a room store. rdb may be nil, which disables the
// read cache.
func NewStore(db *sqlx.DB, rdb *redis.Client, cacheTTL time.Duration) *Store {
	return &Store{db: db, rdb: rdb, cacheTTL: cacheTTL}
}

// CreateRoom inserts the durable room record and its seed message and
// returns the new room id. Implements the matchmaking engine's
// RoomStore.
func (s *Store) CreateRoom(ctx context.Context, user1ID, user2ID int, seedMessage string) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin room tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO chat_rooms (id, user1_id, user2_id, created_at)
		VALUES ($1, $2, $3, NOW())
	`, id, user1ID, user2ID)
	if err != nil {
		return "", fmt.Errorf("insert room: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO chat_messages (room_id, sender_id, content, is_system, created_at)
		VALUES ($1, NULL, $2, true, NOW())
	`, id, seedMessage)
	if err != nil {
		return "", fmt.Errorf("insert seed message: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit room tx: %w", err)
	}

	s.cacheRoom(ctx, Room{
		ChatRoom:    models.ChatRoom{ID: id, User1ID: user1ID, User2ID: user2ID, CreatedAt: time.Now().UTC()},
		SeedMessage: seedMessage,
	})

	return id, nil
}

// GetRoom returns a room with its seed message, from cache when
// possible.
func (s *Store) GetRoom(ctx context.Context, id string) (*Room, error) {
	if room := s.cachedRoom(ctx, id); room != nil {
		return room, nil
	}

	var room Room
	err := s.db.GetContext(ctx, &room.ChatRoom, `
		SELECT id, user1_id, user2_id, created_at FROM chat_rooms WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}

	var seed models.ChatMessage
	err = s.db.GetContext(ctx, &seed, `
		SELECT id, room_id, sender_id, content, is_system, created_at
		FROM chat_messages
		WHERE room_id = $1 AND is_system = true
		ORDER BY created_at
		LIMIT 1
	`, id)
	if err == nil {
		room.SeedMessage = seed.Content
	}

	s.cacheRoom(ctx, room)
	return &room, nil
}

// ListRooms returns recent rooms, newest first. Used by the admin API.
func (s *Store) ListRooms(ctx context.Context, limit, offset int) ([]models.ChatRoom, error) {
	var out []models.ChatRoom
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, user1_id, user2_id, created_at
		FROM chat_rooms
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	return out, err
}

func roomCacheKey(id string) string {
	return "room:" + id
}

func (s *Store) cacheRoom(ctx context.Context, room Room) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(room)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, roomCacheKey(room.ID), data, s.cacheTTL).Err(); err != nil {
		log.Printf("[ROOMS] Failed to cache room %s: %v", room.ID, err)
	}
}

func (s *Store) cachedRoom(ctx context.Context, id string) *Room {
	if s.rdb == nil {
		return nil
	}
	data, err := s.rdb.Get(ctx, roomCacheKey(id)).Bytes()
	if err != nil {
		return nil
	}
	var room Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil
	}
	return &room
}
