package searchcache

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/kailas-cloud/catsearch/internal/domain"
)

const testKey = "test:search_cache:3b241101-e2bb-4255-8caf-4136c566a962:en:a2f5c1d0-7b1e-5c3a-9d4f-0e6b8a7c2d11"

func TestRedisPersist_WritesHashAndTTL(t *testing.T) {
	repo, ms := newTestRedisStore(t)
	rec := testRecord(t)

	var stored map[string]string
	ms.hsetFn = func(_ context.Context, key string, fields map[string]string) error {
		if key != testKey {
			t.Errorf("unexpected key: %s", key)
		}
		stored = fields
		return nil
	}
	var expired bool
	ms.expireFn = func(_ context.Context, key string, ttl time.Duration, nx bool) error {
		expired = true
		if key != testKey || ttl != time.Hour || nx {
			t.Errorf("unexpected expire(%s, %v, %v)", key, ttl, nx)
		}
		return nil
	}

	if err := repo.Persist(context.Background(), rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !expired {
		t.Error("expected EXPIRE to be called")
	}
	if stored[fieldSearchQuery] != "iron plate" {
		t.Errorf("search_query = %q", stored[fieldSearchQuery])
	}
	if stored[fieldLastSearchTime] != strconv.FormatInt(testTime.UnixMilli(), 10) {
		t.Errorf("last_search_time = %q", stored[fieldLastSearchTime])
	}
	if !bytes.Equal([]byte(stored[fieldResultData]), rec.ResultData) {
		t.Errorf("result_data = %x", stored[fieldResultData])
	}
}

func TestRedisPersist_NoTTL(t *testing.T) {
	ms := &mockHashStore{
		expireFn: func(context.Context, string, time.Duration, bool) error {
			t.Error("EXPIRE must not be called without ttl")
			return nil
		},
	}
	repo := NewRedis(ms, "", 0)
	if err := repo.Persist(context.Background(), testRecord(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRedisPersist_HSetError(t *testing.T) {
	repo, ms := newTestRedisStore(t)
	ms.hsetFn = func(context.Context, string, map[string]string) error {
		return errors.New("connection lost")
	}
	if err := repo.Persist(context.Background(), testRecord(t)); err == nil {
		t.Fatal("expected error")
	}
}

func TestRedisFind_RoundTrip(t *testing.T) {
	repo, ms := newTestRedisStore(t)
	rec := testRecord(t)
	hash := recordToHash(rec)
	ms.hgetAllFn = func(_ context.Context, key string) (map[string]string, error) {
		if key != testKey {
			t.Errorf("unexpected key: %s", key)
		}
		return hash, nil
	}

	got, err := repo.Find(context.Background(), rec.Key())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Key() != rec.Key() || got.SearchQuery != rec.SearchQuery {
		t.Errorf("unexpected record: %+v", got)
	}
	if !got.LastSearchTime.Equal(rec.LastSearchTime) {
		t.Errorf("LastSearchTime = %v, want %v", got.LastSearchTime, rec.LastSearchTime)
	}
	if !bytes.Equal(got.ResultData, rec.ResultData) {
		t.Errorf("ResultData = %x", got.ResultData)
	}
}

func TestRedisFind_Miss(t *testing.T) {
	repo, _ := newTestRedisStore(t)
	_, err := repo.Find(context.Background(), testRecord(t).Key())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisFind_Corrupt(t *testing.T) {
	repo, ms := newTestRedisStore(t)
	ms.hgetAllFn = func(context.Context, string) (map[string]string, error) {
		return map[string]string{fieldCombinationID: "not-a-uuid"}, nil
	}
	_, err := repo.Find(context.Background(), testRecord(t).Key())
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestRedisDeleteExpired(t *testing.T) {
	repo, ms := newTestRedisStore(t)
	cutoff := testTime

	ms.scanFn = func(_ context.Context, pattern string) ([]string, error) {
		if pattern != "test:search_cache:*" {
			t.Errorf("unexpected pattern: %s", pattern)
		}
		return []string{"old", "fresh", "gone", "corrupt"}, nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, keys []string) ([]map[string]string, error) {
		return []map[string]string{
			{fieldLastSearchTime: strconv.FormatInt(cutoff.Add(-time.Second).UnixMilli(), 10)},
			{fieldLastSearchTime: strconv.FormatInt(cutoff.UnixMilli(), 10)},
			{},
			{fieldLastSearchTime: "yesterday"},
		}, nil
	}
	var deleted []string
	ms.delFn = func(_ context.Context, keys ...string) (int, error) {
		deleted = keys
		return len(keys), nil
	}

	n, err := repo.DeleteExpired(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d, want 2", n)
	}
	if len(deleted) != 2 || deleted[0] != "old" || deleted[1] != "corrupt" {
		t.Errorf("unexpected deleted keys: %v", deleted)
	}
}

func TestRedisDeleteExpired_Empty(t *testing.T) {
	repo, ms := newTestRedisStore(t)
	ms.hgetAllMultiFn = func(context.Context, []string) ([]map[string]string, error) {
		t.Error("HGETALL must not be called without keys")
		return nil, nil
	}
	n, err := repo.DeleteExpired(context.Background(), testTime)
	if err != nil || n != 0 {
		t.Fatalf("expected (0, nil), got (%d, %v)", n, err)
	}
}

func TestRedisDeleteExpired_ScanError(t *testing.T) {
	repo, ms := newTestRedisStore(t)
	ms.scanFn = func(context.Context, string) ([]string, error) {
		return nil, errors.New("timeout")
	}
	if _, err := repo.DeleteExpired(context.Background(), testTime); err == nil {
		t.Fatal("expected error")
	}
}

func TestRedisDeleteAll(t *testing.T) {
	repo, ms := newTestRedisStore(t)
	ms.scanFn = func(context.Context, string) ([]string, error) {
		return []string{"a", "b", "c"}, nil
	}
	n, err := repo.DeleteAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("deleted %d, want 3", n)
	}
}

func TestRedisPing(t *testing.T) {
	repo, ms := newTestRedisStore(t)
	ms.pingFn = func(context.Context) error { return errors.New("down") }
	if err := repo.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
