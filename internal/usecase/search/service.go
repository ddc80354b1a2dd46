// Package search runs catalog searches: cache lookup, then the fetch
// pipeline, merge, pagination and cache write on a miss.
package search

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/catsearch/internal/domain"
	"github.com/kailas-cloud/catsearch/internal/domain/query"
	"github.com/kailas-cloud/catsearch/internal/domain/search/result"
	"github.com/kailas-cloud/catsearch/internal/logger"
)

// Config holds search defaults and limits.
type Config struct {
	DefaultLocale   string
	FallbackLocale  string
	DefaultPageSize int
	MaxPageSize     int
	MaxQueryLength  int
}

// Page is one page of a search result set.
type Page struct {
	Query   *query.Query
	Results []result.Result
	Total   int
	Offset  int
	Limit   int
	Cached  bool
}

// Service orchestrates cached catalog searches.
type Service struct {
	catalog  Catalog
	cache    Cache
	pipeline *Pipeline
	cfg      Config
	duration *prometheus.HistogramVec
	group    singleflight.Group
}

// New creates a search service with the default fetch pipeline.
// duration is labelled by "cached" and may be nil.
func New(c Catalog, cache Cache, cfg Config, duration *prometheus.HistogramVec) *Service {
	return &Service{
		catalog:  c,
		cache:    cache,
		pipeline: DefaultPipeline(c, cfg.FallbackLocale),
		cfg:      cfg,
		duration: duration,
	}
}

// WithPipeline replaces the fetch pipeline.
func (s *Service) WithPipeline(p *Pipeline) *Service {
	s.pipeline = p
	return s
}

// NewQuery validates a raw search string and parses it into a query.
// An empty locale falls back to the configured default.
func (s *Service) NewQuery(combinationID uuid.UUID, locale, raw string) (*query.Query, error) {
	if s.cfg.MaxQueryLength > 0 && utf8.RuneCountInString(raw) > s.cfg.MaxQueryLength {
		return nil, domain.NewQueryTooLong(s.cfg.MaxQueryLength)
	}
	if locale == "" {
		locale = s.cfg.DefaultLocale
	}
	return query.FromString(combinationID, locale, raw)
}

// Search returns one page of results for q. Concurrent searches for the
// same cache key share one execution; it is detached from the cancellation
// of whichever caller started it, and each caller stops waiting when its
// own context is done.
func (s *Service) Search(ctx context.Context, q *query.Query, offset, limit int) (*Page, error) {
	start := time.Now()
	limit = s.clampLimit(limit)
	if offset < 0 {
		offset = 0
	}

	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(q.CacheKey().String(), func() (any, error) {
		return s.execute(shared, q)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	results := res.Val.(*result.Paginated)

	if s.duration != nil {
		s.duration.WithLabelValues(strconv.FormatBool(results.IsCached())).Observe(time.Since(start).Seconds())
	}

	return &Page{
		Query:   q,
		Results: results.Slice(offset, limit),
		Total:   results.Count(),
		Offset:  offset,
		Limit:   limit,
		Cached:  results.IsCached(),
	}, nil
}

func (s *Service) execute(ctx context.Context, q *query.Query) (*result.Paginated, error) {
	log := logger.FromContext(ctx).With(logger.CacheKeyFields(q.CacheKey())...)

	if cached := s.cache.Lookup(ctx, q.CombinationID(), q.Locale(), q.Hash()); cached != nil {
		if err := hydrate(ctx, s.catalog, q.CombinationID(), cached.All()); err != nil {
			return nil, fmt.Errorf("hydrate cached results: %w", err)
		}
		log.Debug("search served from cache", zap.Int("total", cached.Count()))
		return cached, nil
	}

	agg := result.NewAggregate()
	if err := s.pipeline.Run(ctx, q, agg); err != nil {
		return nil, err
	}

	results := result.NewPaginated(agg.MergedResults())
	s.cache.Store(ctx, q, results)
	log.Debug("search executed", zap.Int("total", results.Count()))
	return results, nil
}

// SearchPage returns the 1-based page of size limit. Out-of-range pages are empty.
func (s *Service) SearchPage(ctx context.Context, q *query.Query, page, limit int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	limit = s.clampLimit(limit)
	if last := math.MaxInt / limit; page-1 > last {
		page = last + 1
	}
	return s.Search(ctx, q, (page-1)*limit, limit)
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		limit = s.cfg.DefaultPageSize
	}
	if s.cfg.MaxPageSize > 0 && limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}
	return limit
}
