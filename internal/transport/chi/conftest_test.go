package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catsearch/internal/domain"
	"github.com/kailas-cloud/catsearch/internal/domain/query"
	"github.com/kailas-cloud/catsearch/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/catsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/catsearch/internal/usecase/search"
)

var testCombination = uuid.MustParse("3b241101-e2bb-4255-8caf-4136c566a962")

// --- mockSearcher ---

type mockSearcher struct {
	searchFn func(ctx context.Context, q *query.Query, page, limit int) (*searchuc.Page, error)

	lastQuery *query.Query
	lastPage  int
	lastLimit int
}

func (m *mockSearcher) NewQuery(combinationID uuid.UUID, locale, raw string) (*query.Query, error) {
	if len(raw) > 16 {
		return nil, domain.NewQueryTooLong(16)
	}
	if locale == "" {
		locale = "en"
	}
	return query.FromString(combinationID, locale, raw)
}

func (m *mockSearcher) SearchPage(ctx context.Context, q *query.Query, page, limit int) (*searchuc.Page, error) {
	m.lastQuery, m.lastPage, m.lastLimit = q, page, limit
	if m.searchFn != nil {
		return m.searchFn(ctx, q, page, limit)
	}
	item := result.NewItem("item", "iron-plate", result.PriorityExactMatch)
	item.SetID(uuid.MustParse("11111111-0000-4000-8000-000000000001"))
	nested := result.NewRecipe("iron-plate", result.PriorityExactMatch)
	nested.SetNormalID(uuid.MustParse("22222222-0000-4000-8000-000000000001"))
	item.AddRecipe(nested)
	recipe := result.NewRecipe("iron-gear-wheel", result.PriorityAnyMatch)
	recipe.SetExpensiveID(uuid.MustParse("22222222-0000-4000-8000-000000000002"))
	return &searchuc.Page{
		Query:   q,
		Results: []result.Result{item, recipe},
		Total:   12,
		Offset:  10,
		Limit:   10,
		Cached:  true,
	}, nil
}

// --- mockCache ---

type mockCache struct {
	evictExpiredFn func(ctx context.Context, maxAge time.Duration) (int, error)
	evictAllFn     func(ctx context.Context) (int, error)

	lastMaxAge time.Duration
}

func (m *mockCache) EvictExpired(ctx context.Context, maxAge time.Duration) (int, error) {
	m.lastMaxAge = maxAge
	if m.evictExpiredFn != nil {
		return m.evictExpiredFn(ctx, maxAge)
	}
	return 3, nil
}

func (m *mockCache) EvictAll(ctx context.Context) (int, error) {
	if m.evictAllFn != nil {
		return m.evictAllFn(ctx)
	}
	return 7, nil
}

// --- mockHealth ---

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

func newTestRouter(t *testing.T, s *mockSearcher, c *mockCache, h *mockHealth, apiKeys ...string) http.Handler {
	t.Helper()
	if h == nil {
		h = &mockHealth{report: healthuc.Report{Status: healthuc.Healthy, Checks: map[string]healthuc.CheckResult{}}}
	}
	srv := NewServer(s, c, h, 24*time.Hour, zap.NewNop())
	return NewRouter(srv, apiKeys, zap.NewNop())
}

func do(t *testing.T, h http.Handler, method, target string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, http.NoBody)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
