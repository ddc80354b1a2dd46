// Package searchcache implements the cache store behind the search cache
// service: Redis hashes, a SQLite table, or an in-process LRU.
package searchcache

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/catsearch/internal/domain"
)

// hashStore is the consumer interface for the Redis cache store (ISP).
type hashStore interface {
	Ping(ctx context.Context) error
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) (int, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// RedisStore keeps one hash per cached search result.
type RedisStore struct {
	store  hashStore
	prefix string
	ttl    time.Duration
}

// NewRedis creates a Redis-backed cache store. Keys are prefixed with
// prefix (domain.KeyPrefix when empty). A positive ttl is refreshed on
// every Persist so abandoned records disappear even without eviction runs.
func NewRedis(s hashStore, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = domain.KeyPrefix
	}
	return &RedisStore{store: s, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) key(k domain.CacheKey) string {
	return r.prefix + "search_cache:" + k.String()
}

func (r *RedisStore) pattern() string {
	return r.prefix + "search_cache:*"
}

// Find returns the record for key or domain.ErrNotFound.
func (r *RedisStore) Find(ctx context.Context, key domain.CacheKey) (*domain.CachedSearchResult, error) {
	m, err := r.store.HGetAll(ctx, r.key(key))
	if err != nil {
		return nil, fmt.Errorf("hgetall search cache %s: %w", key, err)
	}
	if len(m) == 0 {
		return nil, domain.ErrNotFound
	}
	rec, err := recordFromHash(m)
	if err != nil {
		return nil, fmt.Errorf("parse search cache %s: %w", key, err)
	}
	return rec, nil
}

// Persist writes the record, replacing any previous one.
func (r *RedisStore) Persist(ctx context.Context, rec *domain.CachedSearchResult) error {
	key := r.key(rec.Key())
	if err := r.store.HSet(ctx, key, recordToHash(rec)); err != nil {
		return fmt.Errorf("hset search cache %s: %w", rec.Key(), err)
	}
	if r.ttl > 0 {
		if err := r.store.Expire(ctx, key, r.ttl, false); err != nil {
			return fmt.Errorf("expire search cache %s: %w", rec.Key(), err)
		}
	}
	return nil
}

// DeleteExpired removes records last searched before the given time.
// Records that cannot be parsed are removed as well.
func (r *RedisStore) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	keys, err := r.store.Scan(ctx, r.pattern())
	if err != nil {
		return 0, fmt.Errorf("scan search cache: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return 0, fmt.Errorf("hgetall multi search cache: %w", err)
	}

	var expired []string
	for i, m := range hashes {
		if len(m) == 0 {
			continue
		}
		ts, err := lastSearchTime(m)
		if err != nil || ts.Before(before) {
			expired = append(expired, keys[i])
		}
	}

	n, err := r.store.Del(ctx, expired...)
	if err != nil {
		return 0, fmt.Errorf("delete expired search cache: %w", err)
	}
	return n, nil
}

// DeleteAll removes every cached search result under the prefix.
func (r *RedisStore) DeleteAll(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, r.pattern())
	if err != nil {
		return 0, fmt.Errorf("scan search cache: %w", err)
	}
	n, err := r.store.Del(ctx, keys...)
	if err != nil {
		return 0, fmt.Errorf("delete search cache: %w", err)
	}
	return n, nil
}

// Ping checks the underlying connection.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}
