// Package idempotency deduplicates webhook deliveries before they reach the
// rules engine. Keys live in an external store with a TTL so that restarts and
// horizontally scaled instances agree on what was already processed.
package idempotency

import (
	"context"
	"time"
)

const DefaultTTL = 24 * time.Hour

// Store claims delivery keys. Claim returns true exactly once per key within
// the TTL, for every instance sharing the store.
type Store interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
