package searchcache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/catsearch/internal/domain"
)

// mockHashStore implements the consumer interface for tests.
type mockHashStore struct {
	pingFn         func(ctx context.Context) error
	hsetFn         func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn      func(ctx context.Context, key string) (map[string]string, error)
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
	delFn          func(ctx context.Context, keys ...string) (int, error)
	scanFn         func(ctx context.Context, pattern string) ([]string, error)
	expireFn       func(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

func (m *mockHashStore) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

func (m *mockHashStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockHashStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockHashStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return nil, nil
}

func (m *mockHashStore) Del(ctx context.Context, keys ...string) (int, error) {
	if m.delFn != nil {
		return m.delFn(ctx, keys...)
	}
	return len(keys), nil
}

func (m *mockHashStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func (m *mockHashStore) Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error {
	if m.expireFn != nil {
		return m.expireFn(ctx, key, ttl, nx)
	}
	return nil
}

var (
	testCombination = uuid.MustParse("3b241101-e2bb-4255-8caf-4136c566a962")
	testHash        = uuid.MustParse("a2f5c1d0-7b1e-5c3a-9d4f-0e6b8a7c2d11")
	testTime        = time.UnixMilli(1_760_000_000_000)
)

func testRecord(t *testing.T) *domain.CachedSearchResult {
	t.Helper()
	return &domain.CachedSearchResult{
		CombinationID:  testCombination,
		Locale:         "en",
		SearchQuery:    "iron plate",
		SearchHash:     testHash,
		ResultData:     []byte{0x02, 0x00, 0xFF, 0x00},
		LastSearchTime: testTime,
	}
}

func newTestRedisStore(t *testing.T) (*RedisStore, *mockHashStore) {
	t.Helper()
	ms := &mockHashStore{}
	return NewRedis(ms, "test:", time.Hour), ms
}
