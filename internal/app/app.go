// Package app builds the storage backends shared by the server and the CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/catsearch/internal/config"
	dbRedis "github.com/kailas-cloud/catsearch/internal/db/redis"
	"github.com/kailas-cloud/catsearch/internal/db/sqlite"
	catalogrepo "github.com/kailas-cloud/catsearch/internal/repository/catalog"
	cacherepo "github.com/kailas-cloud/catsearch/internal/repository/searchcache"
	searchcacheuc "github.com/kailas-cloud/catsearch/internal/usecase/searchcache"
)

// CacheStore is a search cache backend that can report its health.
type CacheStore interface {
	searchcacheuc.Store
	Ping(ctx context.Context) error
}

// OpenCache builds the cache store selected by cfg.Cache.Driver.
// The returned close func releases the underlying connection.
func OpenCache(ctx context.Context, cfg config.Config, logger *zap.Logger) (CacheStore, func(), error) {
	switch cfg.Cache.Driver {
	case config.CacheDriverRedis:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Username: cfg.Database.Username,
			Password: cfg.Database.Password,
			DB:       cfg.Database.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create redis store: %w", err)
		}
		timeout := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, timeout); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("redis not ready: %w", err)
		}
		logger.Info("Connected to redis", zap.Strings("addrs", cfg.Database.Addrs))
		// Records idle for twice the max age expire on their own if eviction never runs.
		return cacherepo.NewRedis(store, cfg.Cache.KeyPrefix, 2*cfg.Cache.MaxAge()), store.Close, nil

	case config.CacheDriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Cache.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open cache database: %w", err)
		}
		logger.Info("Opened sqlite cache", zap.String("path", cfg.Cache.SQLitePath))
		return cacherepo.NewSQL(db), closeDB(db, logger), nil

	case config.CacheDriverMemory:
		store, err := cacherepo.NewMemory(cfg.Cache.MemorySize)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using in-memory cache", zap.Int("size", cfg.Cache.MemorySize))
		return store, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}

// OpenCatalog opens the catalog database and applies migrations.
func OpenCatalog(ctx context.Context, cfg config.Config, logger *zap.Logger) (*catalogrepo.Repo, func(), error) {
	db, err := sqlite.Open(ctx, cfg.Catalog.SQLitePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog database: %w", err)
	}
	logger.Info("Opened catalog", zap.String("path", cfg.Catalog.SQLitePath))
	return catalogrepo.New(db), closeDB(db, logger), nil
}

func closeDB(db *sql.DB, logger *zap.Logger) func() {
	return func() {
		if err := db.Close(); err != nil {
			logger.Warn("close database", zap.Error(err))
		}
	}
}
