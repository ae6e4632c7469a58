package gate

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultBaseDelay is the per-entrant pacing unit between calls to the
// external catalog.
const DefaultBaseDelay = 2 * time.Second

// Config holds configuration for the admission gate
type Config struct {
	BaseDelay time.Duration
}

// DefaultConfig returns default gate configuration
func DefaultConfig() Config {
	return Config{
		BaseDelay: DefaultBaseDelay,
	}
}

// Gate paces entry to a rate-sensitive external collaborator. Each entrant
// waits in proportion to how many callers are currently waiting: the k-th
// concurrent entrant waits k times the base delay. The gate throttles entry
// rate only; it does not track the caller's downstream work, and it gives
// no ordering guarantee between near-simultaneous entrants.
type Gate struct {
	waiting   atomic.Int64
	baseDelay time.Duration
}

// New creates a new admission gate
func New(cfg Config) *Gate {
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	return &Gate{baseDelay: cfg.BaseDelay}
}

// Enter blocks until the caller is admitted. The counter decrement is
// deferred so an abandoned wait can never leak a slot; no lock is held
// while waiting. Returns ctx.Err() if the context is cancelled first.
func (g *Gate) Enter(ctx context.Context) error {
	k := g.waiting.Add(1)
	defer g.waiting.Add(-1)

	timer := time.NewTimer(time.Duration(k) * g.baseDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Waiting returns the number of callers currently inside Enter
func (g *Gate) Waiting() int64 {
	return g.waiting.Load()
}
