package searchcache

import (
	"context"
	"time"

	"github.com/kailas-cloud/catsearch/internal/domain"
)

// Store persists cached search results.
// Find returns domain.ErrNotFound on a miss.
type Store interface {
	Find(ctx context.Context, key domain.CacheKey) (*domain.CachedSearchResult, error)
	Persist(ctx context.Context, rec *domain.CachedSearchResult) error
	DeleteExpired(ctx context.Context, before time.Time) (int, error)
	DeleteAll(ctx context.Context) (int, error)
}
