// Package cache provides pluggable byte-level caching for HTTP responses.
//
// The registry clients cache raw response payloads across runs so that
// repeated invocations of denoup do not hammer the upstream registries.
// Three backends are provided:
//   - FileCache: entries stored as files under a directory (CLI default)
//   - RedisCache: entries stored in Redis (shared or CI environments)
//   - NullCache: no-op backend that disables caching
//
// All backends implement the Cache interface and are safe for concurrent
// use by multiple goroutines.
package cache

import (
	"context"
	"time"
)

// Cache is the backend interface for byte-level caching.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
