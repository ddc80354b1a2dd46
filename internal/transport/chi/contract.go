package chi

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/catsearch/internal/domain/query"
	healthuc "github.com/kailas-cloud/catsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/catsearch/internal/usecase/search"
)

// Searcher parses and runs catalog searches.
type Searcher interface {
	NewQuery(combinationID uuid.UUID, locale, raw string) (*query.Query, error)
	SearchPage(ctx context.Context, q *query.Query, page, limit int) (*searchuc.Page, error)
}

// CacheMaintainer evicts cached search results.
type CacheMaintainer interface {
	EvictExpired(ctx context.Context, maxAge time.Duration) (int, error)
	EvictAll(ctx context.Context) (int, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
