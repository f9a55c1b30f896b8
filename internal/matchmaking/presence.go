package matchmaking

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

const (
	queueDepthKey     = "random_chat:queue_depth"
	activeSessionsKey = "random_chat:active_sessions"
)

// Presence publishes live engine gauges to Redis so the HTTP status
// endpoint can read them without touching the engine lock. All methods
// are best-effort and safe on a nil receiver or nil client.
type Presence struct {
	rdb *redis.Client
}

func NewPresence(rdb *redis.Client) *Presence {
	return &Presence{rdb: rdb}
}

// Publish stores the current queue depth and active session count.
func (p *Presence) Publish(ctx context.Context, queueDepth, activeSessions int) {
	if p == nil || p.rdb == nil {
		return
	}
	if err := p.rdb.Set(ctx, queueDepthKey, queueDepth, 0).Err(); err != nil {
		log.Printf("[MATCH] Failed to publish queue depth: %v", err)
		return
	}
	if err := p.rdb.Set(ctx, activeSessionsKey, activeSessions, 0).Err(); err != nil {
		log.Printf("[MATCH] Failed to publish session count: %v", err)
	}
}

// ReadStats returns the last published gauges. Missing keys read as
// zero.
func (p *Presence) ReadStats(ctx context.Context) (queueDepth, activeSessions int) {
	if p == nil || p.rdb == nil {
		return 0, 0
	}
	queueDepth, _ = p.rdb.Get(ctx, queueDepthKey).Int()
	activeSessions, _ = p.rdb.Get(ctx, activeSessionsKey).Int()
	return queueDepth, activeSessions
}
