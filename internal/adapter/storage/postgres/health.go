package postgres

import (
	"context"
	"time"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports database connectivity for the health endpoint.
type HealthChecker struct {
	db pinger
}

// NewHealthChecker creates a new database HealthChecker.
func NewHealthChecker(db pinger) *HealthChecker {
	return &HealthChecker{db: db}
}

func (h *HealthChecker) Name() string { return "postgres" }

func (h *HealthChecker) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return h.db.Ping(pingCtx)
}
