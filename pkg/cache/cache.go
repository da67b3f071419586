// Package cache provides pluggable byte caches for upstream API responses.
//
// Backends:
//   - FileCache: persistent, for CLI usage (survives process restarts)
//   - MemoryCache: process-local, for tests and single-shot commands
//   - RedisCache: shared, for serve mode with multiple instances
//   - NullCache: disabled caching
//
// Entries are immutable once written; concurrent writers for the same key
// produce identical data, so no locking discipline is required beyond what
// each backend provides internally.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with per-entry TTL.
// A TTL of zero means the entry never expires.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present
	// and fresh; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
