package ports

import "context"

// HealthChecker is one dependency reported by /health. Any failing checker
// turns the overall status to degraded.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Name() string
}
