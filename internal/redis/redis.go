// Package redis opens the client used for room caching and the
// matchmaking gauges.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect opens and verifies a Redis client from a redis:// URL.
func Connect(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
