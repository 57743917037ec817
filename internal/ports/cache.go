package ports

import (
	"context"
	"time"
)

// Cache backs the leaderboard response cache and the advisory vote
// burst counters. Implementations treat a missing key as an empty
// value, not an error.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// IncrWithTTL increments a counter, starting its expiry window on
	// the first increment only, and returns the new count.
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}
