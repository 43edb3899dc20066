// Package cache stores registry index files between dargo invocations.
//
// The registry client keeps every fetched index file in a [Cache] so repeated
// add or upgrade runs do not hit the network for crates they already looked
// at. Three backends are available:
//
//   - [FileCache]: one JSON entry per key under ~/.cache/dargo (default)
//   - [RedisCache]: a shared Redis instance, useful for CI fleets
//   - [NullCache]: stores nothing; used with --no-cache and in tests
//
// Entries carry their own expiration. A refresh of the index (--update) does
// not clear the cache; it makes the client overwrite entries as it re-fetches
// them.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes every entry and returns how many were removed.
	Clear(ctx context.Context) (int, error)
	// Close releases backend resources.
	Close() error
}
