// Package searchcache caches encoded search result sets keyed by the
// query hash. Lookups and writes are best effort: store and codec failures
// are logged and reported as a miss or a skipped write.
package searchcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catsearch/internal/codec"
	"github.com/kailas-cloud/catsearch/internal/domain"
	"github.com/kailas-cloud/catsearch/internal/domain/query"
	"github.com/kailas-cloud/catsearch/internal/domain/search/result"
	"github.com/kailas-cloud/catsearch/internal/logger"
)

// Service is the hash-keyed search result cache.
type Service struct {
	store       Store
	lookupTotal *prometheus.CounterVec
	writeTotal  *prometheus.CounterVec
	logger      *zap.Logger
	now         func() time.Time
}

// New creates a cache service.
// lookupTotal is labelled by "result" (hit/miss/error) and writeTotal by
// "status" (ok/error); both may be nil.
func New(
	s Store,
	lookupTotal *prometheus.CounterVec,
	writeTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Service {
	return &Service{
		store:       s,
		lookupTotal: lookupTotal,
		writeTotal:  writeTotal,
		logger:      logger,
		now:         time.Now,
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Lookup returns the cached results for the key, marked as cached, or nil.
// A hit refreshes the record's last search time.
func (s *Service) Lookup(ctx context.Context, combinationID uuid.UUID, locale string, hash uuid.UUID) *result.Paginated {
	key := domain.CacheKey{CombinationID: combinationID, Locale: locale, SearchHash: hash}

	rec, err := s.store.Find(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		s.incLookup("miss")
		return nil
	}
	if err != nil {
		s.lookupFailed(key, "find", err)
		return nil
	}

	results, err := codec.DeserializeSet(rec.ResultData)
	if err != nil {
		s.lookupFailed(key, "decode", err)
		return nil
	}

	rec.LastSearchTime = s.now()
	if err := s.store.Persist(ctx, rec); err != nil {
		s.lookupFailed(key, "touch", err)
		return nil
	}

	s.incLookup("hit")
	p := result.NewPaginated(results)
	p.MarkCached()
	return p
}

// Store encodes results and persists them under the query's key.
// Failures are logged and never returned.
func (s *Service) Store(ctx context.Context, q *query.Query, results *result.Paginated) {
	data, err := codec.SerializeSet(results.All())
	if err != nil {
		s.storeFailed(q.CacheKey(), "encode", err)
		return
	}

	rec := &domain.CachedSearchResult{
		CombinationID:  q.CombinationID(),
		Locale:         q.Locale(),
		SearchQuery:    q.RawString(),
		SearchHash:     q.Hash(),
		ResultData:     data,
		LastSearchTime: s.now(),
	}
	if err := s.store.Persist(ctx, rec); err != nil {
		s.storeFailed(q.CacheKey(), "persist", err)
		return
	}
	s.incWrite("ok")
}

// EvictExpired deletes records not searched within maxAge.
func (s *Service) EvictExpired(ctx context.Context, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, fmt.Errorf("%w: max age must be positive, got %s", domain.ErrInvalidArgument, maxAge)
	}
	before := s.now().Add(-maxAge)
	n, err := s.store.DeleteExpired(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("delete expired: %w", err)
	}
	s.logger.Info("evicted expired search results",
		zap.Int("deleted", n),
		zap.Time("before", before),
	)
	return n, nil
}

// EvictAll deletes every cached record.
func (s *Service) EvictAll(ctx context.Context) (int, error) {
	n, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete all: %w", err)
	}
	s.logger.Info("evicted all search results", zap.Int("deleted", n))
	return n, nil
}

func (s *Service) lookupFailed(key domain.CacheKey, stage string, err error) {
	s.incLookup("error")
	s.logger.Warn("search cache lookup failed, treating as miss", append(logger.CacheKeyFields(key),
		zap.String("stage", stage),
		zap.Error(err),
	)...)
}

func (s *Service) storeFailed(key domain.CacheKey, stage string, err error) {
	s.incWrite("error")
	s.logger.Warn("search cache write skipped", append(logger.CacheKeyFields(key),
		zap.String("stage", stage),
		zap.Error(err),
	)...)
}

func (s *Service) incLookup(res string) {
	if s.lookupTotal != nil {
		s.lookupTotal.WithLabelValues(res).Inc()
	}
}

func (s *Service) incWrite(status string) {
	if s.writeTotal != nil {
		s.writeTotal.WithLabelValues(status).Inc()
	}
}
