// Package cache stores the results of expensive operations keyed by content.
//
// The recalculation pipeline caches resolved POI sets under a hash of the
// input POIs, and the graph command caches rendered SVG documents the same
// way. Three backends are provided:
//
//   - [FileCache]: JSON entries on local disk, for the CLI
//   - [RedisCache]: a shared Redis instance, for the API server
//   - [NullCache]: stores nothing, for tests and --no-cache
//
// Keys are produced by a [Keyer] so that backends never see domain types.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	// Expired or corrupt entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Default TTLs for cached artifacts.
const (
	// TTLRecalc bounds how long a recalculation result is reused.
	// Results are content-addressed, so the TTL only limits disk growth.
	TTLRecalc = 7 * 24 * time.Hour

	// TTLGraph bounds how long a rendered dependency graph is reused.
	TTLGraph = 24 * time.Hour
)

// Key type labels reported to observability hooks.
const (
	KeyTypeRecalc = "recalc"
	KeyTypeGraph  = "graph"
)
