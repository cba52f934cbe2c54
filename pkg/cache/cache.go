// Package cache stores rendered artifacts keyed by the customization that
// produced them.
//
// Rendering is deterministic, so a state's canonical key fully identifies
// its SVG, PNG or model output. The preview server uses a [Cache] to avoid
// rasterizing the same avatar twice.
//
// Three implementations are provided:
//   - [NullCache] never stores anything (caching disabled)
//   - [MemoryCache] keeps entries in process with a TTL and a size bound
//   - [FileCache] persists entries on disk across restarts
//
// Keys are built with [ArtifactKey]:
//
//	key := cache.ArtifactKey(st.Key(), "png", 800, 1000)
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored data and whether the key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
