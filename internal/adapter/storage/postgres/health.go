package postgres

import (
	"context"
	"fmt"
)

// StoreHealth reports whether the currencies table can be queried. A database
// that is up but not migrated counts as unhealthy.
type StoreHealth struct {
	pool Pool
}

func NewHealthCheck(pool Pool) *StoreHealth {
	return &StoreHealth{pool: pool}
}

func (h *StoreHealth) Ping(ctx context.Context) error {
	if _, err := h.pool.Exec(ctx, `SELECT 1 FROM currencies LIMIT 1`); err != nil {
		return fmt.Errorf("currencies store: %w", err)
	}
	return nil
}

func (h *StoreHealth) Name() string {
	return "postgresql"
}
