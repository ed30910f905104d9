// Package cache stores structurization results keyed by a hash of their
// input CFG, so re-running the structurizer over an unchanged function
// during iterative shader compilation skips the work entirely.
package cache

import (
	"context"
	"time"
)

// Cache is the storage backend interface. Every backend treats a miss as a
// (nil, false, nil) return, never an error — only a genuine I/O failure is
// an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ResultKey derives the cache key for a structurization run from the
// SHA-256 hash of its serialized input fixture.
func ResultKey(inputHash string) string {
	return "structurize:" + inputHash
}
