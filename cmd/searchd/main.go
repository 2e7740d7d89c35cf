package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/config"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/db"
	dbRedis "github.com/swm-sink/la-factoria-content-factory-sub002/internal/db/redis"
	logpkg "github.com/swm-sink/la-factoria-content-factory-sub002/internal/logger"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/metrics"
	analyticsrepo "github.com/swm-sink/la-factoria-content-factory-sub002/internal/repository/analytics"
	contentrepo "github.com/swm-sink/la-factoria-content-factory-sub002/internal/repository/content"
	documentrepo "github.com/swm-sink/la-factoria-content-factory-sub002/internal/repository/document"
	savedrepo "github.com/swm-sink/la-factoria-content-factory-sub002/internal/repository/savedsearch"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/transport/admin"
	analyticsuc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/usecase/analytics"
	indexuc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/usecase/index"
	savedsearchuc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/usecase/savedsearch"
	searchuc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/usecase/search"
	suggestuc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/usecase/suggest"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting search daemon",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// rueidis speaks both redis and valkey; the driver switch is kept
	// for config compatibility.
	var store db.Store
	switch cfg.Database.Driver {
	case "redis", "valkey":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Username: cfg.Database.Username,
			Password: cfg.Database.Password,
			DB:       cfg.Database.DB,
		})
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Repositories
	docRepo := documentrepo.New(store)
	eventRepo := analyticsrepo.New(store)
	savedRepo := savedrepo.New(store)
	contentRepo := contentrepo.New(store)

	// Use case services, wired at the composition root
	analyticsSvc := analyticsuc.New(eventRepo, analyticsuc.Config{
		CacheTTL:           time.Duration(cfg.Analytics.CacheTTLSec) * time.Second,
		MaxEventSample:     cfg.Analytics.MaxEventSample,
		ExcludeZeroResults: cfg.Analytics.ExcludeZeroResults,
	}, logger)

	suggestSvc := suggestuc.New(eventRepo, docRepo, suggestuc.Config{
		MinLength: cfg.Suggest.MinLength,
		CacheTTL:  time.Duration(cfg.Suggest.CacheTTLSec) * time.Second,
	}, metrics.SuggestCache(), logger)

	savedSvc := savedsearchuc.New(savedRepo, logger)
	searchSvc := searchuc.New(docRepo, analyticsSvc, suggestSvc, savedSvc, logger)

	pipeline := indexuc.New(contentRepo, searchSvc, docRepo, indexuc.Config{
		BatchSize:      cfg.Indexing.BatchSize,
		PagesPerSecond: cfg.Indexing.PagesPerSecond,
	}, logger)

	if err := searchSvc.Initialize(ctx); err != nil {
		logger.Fatal("Failed to initialize search backend", zap.Error(err))
	}

	// Background maintenance loops
	var wg sync.WaitGroup
	if cfg.Indexing.ReindexIntervalMin > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runReindexLoop(ctx, pipeline, cfg.Indexing)
		}()
	}
	if cfg.Indexing.CleanupIntervalMin > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runCleanupLoop(ctx, pipeline, cfg.Indexing, logger)
		}()
	}

	// Admin HTTP: health, metrics and maintenance triggers; the search
	// API itself is served by the platform gateway, not this daemon.
	adminSrv := admin.NewServer(store, searchSvc, pipeline, cfg.Indexing.BatchSize, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      adminSrv.Router(cfg.HTTP.AdminTokens),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("Starting admin HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
	wg.Wait()

	logger.Info("Daemon stopped gracefully")
}

// runReindexLoop runs a full reindex on startup, then incremental
// reindexes of the preceding interval on a ticker.
func runReindexLoop(ctx context.Context, pipeline *indexuc.Pipeline, cfg config.IndexingConfig) {
	interval := time.Duration(cfg.ReindexIntervalMin) * time.Minute

	pipeline.ReindexAll(ctx, cfg.BatchSize, time.Time{})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			since := time.Now().UTC().Add(-2 * interval)
			pipeline.ReindexAll(ctx, cfg.BatchSize, since)
		}
	}
}

func runCleanupLoop(ctx context.Context, pipeline *indexuc.Pipeline, cfg config.IndexingConfig, logger *zap.Logger) {
	ticker := time.NewTicker(time.Duration(cfg.CleanupIntervalMin) * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := pipeline.CleanupOrphans(ctx); err != nil {
				logger.Error("Orphan cleanup failed", zap.Error(err))
			}
		}
	}
}
