package catsearch

import (
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/catsearch/internal/config"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	cfg    config.Config
	logger *zap.Logger
}

// WithCatalog sets the path of the SQLite catalog database. Required.
func WithCatalog(path string) Option {
	return func(cc *clientConfig) {
		cc.cfg.Catalog.SQLitePath = path
	}
}

// WithMemoryCache caches results in an in-process LRU of at most size entries.
// This is the default.
func WithMemoryCache(size int) Option {
	return func(cc *clientConfig) {
		cc.cfg.Cache.Driver = config.CacheDriverMemory
		cc.cfg.Cache.MemorySize = size
	}
}

// WithSQLiteCache caches results in a SQLite database at path.
func WithSQLiteCache(path string) Option {
	return func(cc *clientConfig) {
		cc.cfg.Cache.Driver = config.CacheDriverSQLite
		cc.cfg.Cache.SQLitePath = path
	}
}

// WithRedisCache caches results in Redis.
func WithRedisCache(addr, password string) Option {
	return func(cc *clientConfig) {
		cc.cfg.Cache.Driver = config.CacheDriverRedis
		cc.cfg.Database.Addrs = []string{addr}
		cc.cfg.Database.Password = password
	}
}

// WithCacheMaxAge sets the default age used by EvictExpired.
func WithCacheMaxAge(d time.Duration) Option {
	return func(cc *clientConfig) {
		cc.cfg.Cache.MaxAgeSec = int(d / time.Second)
	}
}

// WithLocales sets the default query locale and the locale searched as a fallback.
func WithLocales(defaultLocale, fallbackLocale string) Option {
	return func(cc *clientConfig) {
		cc.cfg.Search.DefaultLocale = defaultLocale
		cc.cfg.Search.FallbackLocale = fallbackLocale
	}
}

// WithPageSize sets the default and maximum page size.
func WithPageSize(defaultSize, maxSize int) Option {
	return func(cc *clientConfig) {
		cc.cfg.Search.DefaultPageSize = defaultSize
		cc.cfg.Search.MaxPageSize = maxSize
	}
}

// WithMaxQueryLength limits the raw query length in characters.
func WithMaxQueryLength(n int) Option {
	return func(cc *clientConfig) {
		cc.cfg.Search.MaxQueryLength = n
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(cc *clientConfig) {
		cc.logger = l
	}
}
