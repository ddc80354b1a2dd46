package db

import (
	"context"
	"time"
)

// Store is the key-value facade behind the Redis cache driver.
// Consumers depend on the narrow sub-interfaces.
type Store interface {
	Pinger
	HashStore
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) (int, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// KVStore provides key lifetime operations.
type KVStore interface {
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}
