package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/catsearch/internal/app"
	"github.com/kailas-cloud/catsearch/internal/config"
	logpkg "github.com/kailas-cloud/catsearch/internal/logger"
	"github.com/kailas-cloud/catsearch/internal/metrics"
	chiTransport "github.com/kailas-cloud/catsearch/internal/transport/chi"
	healthuc "github.com/kailas-cloud/catsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/catsearch/internal/usecase/search"
	searchcacheuc "github.com/kailas-cloud/catsearch/internal/usecase/searchcache"
	"github.com/kailas-cloud/catsearch/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting catsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("cache_driver", cfg.Cache.Driver),
	)

	ctx := context.Background()

	catalog, closeCatalog, err := app.OpenCatalog(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open catalog", zap.Error(err))
	}
	defer closeCatalog()

	cacheStore, closeCache, err := app.OpenCache(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open search cache", zap.Error(err))
	}
	defer closeCache()

	metrics.RegisterSearchMetrics()

	cacheSvc := searchcacheuc.New(cacheStore, metrics.SearchCacheTotal, metrics.SearchCacheWritesTotal, logger)
	searchSvc := searchuc.New(catalog, cacheSvc, searchuc.Config{
		DefaultLocale:   cfg.Search.DefaultLocale,
		FallbackLocale:  cfg.Search.FallbackLocale,
		DefaultPageSize: cfg.Search.DefaultPageSize,
		MaxPageSize:     cfg.Search.MaxPageSize,
		MaxQueryLength:  cfg.Search.MaxQueryLength,
	}, metrics.SearchDuration)
	healthSvc := healthuc.New(catalog, cacheStore)

	server := chiTransport.NewServer(searchSvc, cacheSvc, healthSvc, cfg.Cache.MaxAge(), logger)
	handler := chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
