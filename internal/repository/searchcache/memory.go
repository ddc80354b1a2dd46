package searchcache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kailas-cloud/catsearch/internal/domain"
)

// MemoryStore keeps cached search results in a bounded in-process LRU.
// The least recently used record is dropped once size is reached.
type MemoryStore struct {
	cache *lru.Cache[domain.CacheKey, domain.CachedSearchResult]
}

// NewMemory creates an in-memory cache store holding at most size records.
func NewMemory(size int) (*MemoryStore, error) {
	c, err := lru.New[domain.CacheKey, domain.CachedSearchResult](size)
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}
	return &MemoryStore{cache: c}, nil
}

// Find returns a copy of the record for key or domain.ErrNotFound.
func (m *MemoryStore) Find(_ context.Context, key domain.CacheKey) (*domain.CachedSearchResult, error) {
	rec, ok := m.cache.Get(key)
	if !ok {
		return nil, domain.ErrNotFound
	}
	rec.ResultData = append([]byte(nil), rec.ResultData...)
	return &rec, nil
}

// Persist stores a copy of the record.
func (m *MemoryStore) Persist(_ context.Context, rec *domain.CachedSearchResult) error {
	cp := *rec
	cp.ResultData = append([]byte(nil), rec.ResultData...)
	m.cache.Add(rec.Key(), cp)
	return nil
}

// DeleteExpired removes records last searched before the given time.
func (m *MemoryStore) DeleteExpired(_ context.Context, before time.Time) (int, error) {
	var n int
	for _, k := range m.cache.Keys() {
		rec, ok := m.cache.Peek(k)
		if ok && rec.LastSearchTime.Before(before) {
			m.cache.Remove(k)
			n++
		}
	}
	return n, nil
}

// DeleteAll removes every record.
func (m *MemoryStore) DeleteAll(_ context.Context) (int, error) {
	n := m.cache.Len()
	m.cache.Purge()
	return n, nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(_ context.Context) error { return nil }
