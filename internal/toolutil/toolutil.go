// Package toolutil provides shared helper functions for go_tube MCP tools.
package toolutil

import (
	"context"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// qualityBuckets are the accepted preferred-quality labels.
var qualityBuckets = map[string]bool{
	"8K": true, "4K": true, "1440p": true, "1080p": true, "720p": true,
}

// NormQuality normalises a preferred-quality field: empty or unknown values
// fall back to "Best Available".
func NormQuality(q string) string {
	if qualityBuckets[q] {
		return q
	}
	return engine.QualityBestAvailable
}

// CacheLoadJSON tries to load a cached value of type T from the engine cache.
// Returns the decoded value and true on hit; zero value and false on miss or decode error.
func CacheLoadJSON[T any](ctx context.Context, key string) (T, bool) {
	return engine.CacheLoadJSON[T](ctx, key)
}

// CacheStoreJSON marshals v and stores it in the engine cache.
func CacheStoreJSON[T any](ctx context.Context, key string, v T) {
	engine.CacheStoreJSON(ctx, key, v)
}
