package catsearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catsearch/internal/app"
	catalogrepo "github.com/kailas-cloud/catsearch/internal/repository/catalog"
	healthuc "github.com/kailas-cloud/catsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/catsearch/internal/usecase/search"
	searchcacheuc "github.com/kailas-cloud/catsearch/internal/usecase/searchcache"
)

// Client is the catsearch SDK entry point.
type Client struct {
	catalog *catalogrepo.Repo
	search  *searchuc.Service
	cache   *searchcacheuc.Service
	health  *healthuc.Service
	maxAge  time.Duration
	closers []func()
}

// New opens the catalog and the cache and wires the search service.
// ctx bounds the startup work, including the wait for a Redis cache.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cc := &clientConfig{logger: zap.NewNop()}
	for _, o := range opts {
		o(cc)
	}
	cfg := cc.cfg
	if cfg.Catalog.SQLitePath == "" {
		return nil, errors.New("catsearch: catalog path required (use WithCatalog)")
	}
	cfg.ApplyDefaults()

	c := &Client{maxAge: cfg.Cache.MaxAge()}

	catalog, closeCatalog, err := app.OpenCatalog(ctx, cfg, cc.logger)
	if err != nil {
		return nil, fmt.Errorf("catsearch: %w", err)
	}
	c.closers = append(c.closers, closeCatalog)

	store, closeCache, err := app.OpenCache(ctx, cfg, cc.logger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("catsearch: %w", err)
	}
	c.closers = append(c.closers, closeCache)

	c.catalog = catalog
	c.cache = searchcacheuc.New(store, nil, nil, cc.logger)
	c.search = searchuc.New(catalog, c.cache, searchuc.Config{
		DefaultLocale:   cfg.Search.DefaultLocale,
		FallbackLocale:  cfg.Search.FallbackLocale,
		DefaultPageSize: cfg.Search.DefaultPageSize,
		MaxPageSize:     cfg.Search.MaxPageSize,
		MaxQueryLength:  cfg.Search.MaxQueryLength,
	}, nil)
	c.health = healthuc.New(catalog, store)
	return c, nil
}

// Close releases the catalog and cache connections.
func (c *Client) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Ping reports an error when the catalog is unreachable. A failing cache
// does not fail Ping since searches still work without it.
func (c *Client) Ping(ctx context.Context) error {
	report := c.health.Check(ctx)
	if report.Status == healthuc.Unhealthy {
		return fmt.Errorf("ping: catalog %s", report.Checks["catalog"])
	}
	return nil
}

// Search returns the 1-based page of results for raw in the given locale.
// An empty locale uses the default locale; a zero limit the default page size.
func (c *Client) Search(
	ctx context.Context, combinationID uuid.UUID, locale, raw string, page, limit int,
) (*Page, error) {
	q, err := c.search.NewQuery(combinationID, locale, raw)
	if err != nil {
		return nil, err
	}
	p, err := c.search.SearchPage(ctx, q, page, limit)
	if err != nil {
		return nil, err
	}
	return pageFromDomain(p), nil
}

// ImportCatalog replaces the catalog of a combination with a JSON export.
// Cached results are not invalidated; call EvictAll if names or ids changed.
func (c *Client) ImportCatalog(ctx context.Context, combinationID uuid.UUID, r io.Reader) error {
	dump, err := catalogrepo.ReadDump(r)
	if err != nil {
		return err
	}
	if err := c.catalog.Import(ctx, combinationID, dump); err != nil {
		return fmt.Errorf("import catalog: %w", err)
	}
	return nil
}

// EvictExpired deletes cached results not searched within maxAge.
// A zero maxAge uses the configured cache max age.
func (c *Client) EvictExpired(ctx context.Context, maxAge time.Duration) (int, error) {
	if maxAge == 0 {
		maxAge = c.maxAge
	}
	return c.cache.EvictExpired(ctx, maxAge)
}

// EvictAll deletes every cached result.
func (c *Client) EvictAll(ctx context.Context) (int, error) {
	return c.cache.EvictAll(ctx)
}
