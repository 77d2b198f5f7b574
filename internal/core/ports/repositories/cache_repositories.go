package repositories

import (
	"context"
	"time"
)

// Cache is a string key-value store with optional expiry.
type Cache interface {
	// Get returns the value stored under key. found is false when the key is
	// absent or expired.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del removes key.
	Del(ctx context.Context, key string) error
}
