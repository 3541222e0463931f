package cache

import (
	"context"
	"time"
)

// Cache is a minimal key/value cache interface (e.g. Redis).
type Cache interface {
	// Ping checks if the cache is reachable.
	Ping(ctx context.Context) error

	// SetNX stores value only if key does not exist yet and reports whether it did.
	SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)

	// Del removes a key. No-op if the key does not exist.
	Del(ctx context.Context, key string) error
}
