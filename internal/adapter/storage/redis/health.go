package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// HealthChecker reports Redis connectivity for the health endpoint.
type HealthChecker struct {
	client *redis.Client
}

// NewHealthChecker creates a new Redis HealthChecker.
func NewHealthChecker(client *redis.Client) *HealthChecker {
	return &HealthChecker{client: client}
}

func (h *HealthChecker) Name() string { return "redis" }

func (h *HealthChecker) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return h.client.Ping(pingCtx).Err()
}
