package searchcache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catsearch/internal/domain"
	"github.com/kailas-cloud/catsearch/internal/domain/query"
	"github.com/kailas-cloud/catsearch/internal/domain/search/result"
)

// mockStore is an in-memory Store whose methods can be overridden per test.
type mockStore struct {
	records map[domain.CacheKey]domain.CachedSearchResult

	findFn          func(ctx context.Context, key domain.CacheKey) (*domain.CachedSearchResult, error)
	persistFn       func(ctx context.Context, rec *domain.CachedSearchResult) error
	deleteExpiredFn func(ctx context.Context, before time.Time) (int, error)
	deleteAllFn     func(ctx context.Context) (int, error)

	persistCalls int
}

func newMockStore() *mockStore {
	return &mockStore{records: make(map[domain.CacheKey]domain.CachedSearchResult)}
}

func (m *mockStore) Find(ctx context.Context, key domain.CacheKey) (*domain.CachedSearchResult, error) {
	if m.findFn != nil {
		return m.findFn(ctx, key)
	}
	rec, ok := m.records[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (m *mockStore) Persist(ctx context.Context, rec *domain.CachedSearchResult) error {
	m.persistCalls++
	if m.persistFn != nil {
		return m.persistFn(ctx, rec)
	}
	m.records[rec.Key()] = *rec
	return nil
}

func (m *mockStore) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx, before)
	}
	var n int
	for k, rec := range m.records {
		if rec.LastSearchTime.Before(before) {
			delete(m.records, k)
			n++
		}
	}
	return n, nil
}

func (m *mockStore) DeleteAll(ctx context.Context) (int, error) {
	if m.deleteAllFn != nil {
		return m.deleteAllFn(ctx)
	}
	n := len(m.records)
	clear(m.records)
	return n, nil
}

var (
	testCombination = uuid.MustParse("3b241101-e2bb-4255-8caf-4136c566a962")
	testNow         = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

type testEnv struct {
	svc     *Service
	store   *mockStore
	lookups *prometheus.CounterVec
	writes  *prometheus.CounterVec
}

func newTestService(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		store: newMockStore(),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "test_search_cache_total",
		}, []string{"result"}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "test_search_cache_writes_total",
		}, []string{"status"}),
	}
	env.svc = New(env.store, env.lookups, env.writes, zap.NewNop()).
		WithClock(func() time.Time { return testNow })
	return env
}

func testQuery(t *testing.T) *query.Query {
	t.Helper()
	q, err := query.FromString(testCombination, "en", "Iron  Plate")
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	return q
}

func testResults() *result.Paginated {
	item := result.NewItem("item", "iron-plate", result.PriorityExactMatch)
	item.SetID(uuid.MustParse("1ce5dc33-91b2-4f69-8680-639d702d9f56"))
	r := result.NewRecipe("iron-plate", result.PriorityExactMatch)
	r.SetNormalID(uuid.MustParse("8d43fd05-7c4c-4d8c-a2a6-3f3e6a0b1c22"))
	item.AddRecipe(r)

	standalone := result.NewRecipe("iron-gear", result.PriorityAnyMatch)
	standalone.SetExpensiveID(uuid.MustParse("0f9d8b1e-2a3c-4d5e-8f70-91a2b3c4d5e6"))

	return result.NewPaginated([]result.Result{item, standalone})
}
