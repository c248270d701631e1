package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// RateLimitHealth reports whether the rate limit counters are reachable.
type RateLimitHealth struct {
	client *goredis.Client
}

func NewHealthCheck(client *goredis.Client) *RateLimitHealth {
	return &RateLimitHealth{client: client}
}

func (h *RateLimitHealth) Ping(ctx context.Context) error {
	if err := h.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("rate limit store: %w", err)
	}
	return nil
}

func (h *RateLimitHealth) Name() string {
	return "redis"
}
