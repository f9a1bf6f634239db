// Package cache stores solved layouts and rendered artifacts by content key.
//
// Keys are derived from the scene bytes and the options that affect the
// output, so an unchanged scene solved with unchanged options is served from
// the cache. Backends:
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for servers
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// # Keys
//
//	keyer := cache.NewDefaultKeyer()
//	lk := keyer.LayoutKey(cache.Hash(sceneBytes), cache.LayoutKeyOpts{Width: 800})
//	ak := keyer.ArtifactKey(cache.Hash(layoutBytes), cache.ArtifactKeyOpts{Format: "svg"})
//
// Wrap a keyer with [NewScopedKeyer] to give each tenant its own namespace.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for cache backends. A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry lifetimes.
const (
	// LayoutTTL is how long a solved layout stays cached.
	LayoutTTL = 7 * 24 * time.Hour

	// ArtifactTTL is how long a rendered artifact stays cached.
	ArtifactTTL = 24 * time.Hour
)
