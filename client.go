// Package contentsearch is the embedded entry point to the content
// search engine: document indexing, scan-based search with facets and
// highlights, autocomplete suggestions, search analytics, and saved
// searches, backed by Redis/Valkey or run fully in-process.
package contentsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/db"
	dbRedis "github.com/swm-sink/la-factoria-content-factory-sub002/internal/db/redis"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/metrics"
	analyticsrepo "github.com/swm-sink/la-factoria-content-factory-sub002/internal/repository/analytics"
	documentrepo "github.com/swm-sink/la-factoria-content-factory-sub002/internal/repository/document"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/repository/memory"
	savedrepo "github.com/swm-sink/la-factoria-content-factory-sub002/internal/repository/savedsearch"
	analyticsuc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/usecase/analytics"
	savedsearchuc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/usecase/savedsearch"
	searchuc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/usecase/search"
	suggestuc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/usecase/suggest"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the embedded search engine entry point.
type Client struct {
	store     db.Store // nil in memory mode
	backend   *searchuc.Service
	suggest   *suggestuc.Service
	analytics *analyticsuc.Service
	saved     *savedsearchuc.Service
}

// New creates a Client, connects to the database (unless WithMemory),
// and verifies the backend is reachable.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{tracking: true}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.memory {
		return wireMemory(cfg), nil
	}
	if len(cfg.addrs) == 0 {
		return nil, errors.New("contentsearch: database address required (use WithRedis, WithValkey, or WithMemory)")
	}

	// rueidis speaks both redis and valkey.
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("contentsearch: create %s store: %w", cfg.driver, err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("contentsearch: database not ready: %w", err)
	}

	docRepo := documentrepo.New(store)
	eventRepo := analyticsrepo.New(store)
	savedRepo := savedrepo.New(store)

	c := wireServices(cfg, docRepo, eventRepo, eventRepo, docRepo, savedRepo)
	c.store = store

	if err := c.backend.Initialize(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("contentsearch: %w", err)
	}
	return c, nil
}

func wireMemory(cfg *clientConfig) *Client {
	docs := memory.NewDocumentStore()
	events := memory.NewEventLog()
	saved := memory.NewSavedSearchStore()
	return wireServices(cfg, docs, events, events, docs, saved)
}

func wireServices(
	cfg *clientConfig,
	docs searchuc.DocumentStore,
	events analyticsuc.EventLog,
	suggestEvents suggestuc.EventSource,
	suggestDocs suggestuc.DocumentSource,
	saved savedsearchuc.Store,
) *Client {
	analyticsSvc := analyticsuc.New(events, analyticsuc.Config{
		CacheTTL:           cfg.analyticsCacheTTL,
		ExcludeZeroResults: cfg.excludeZeroResults,
	}, cfg.logger)

	suggestSvc := suggestuc.New(suggestEvents, suggestDocs, suggestuc.Config{
		MinLength: cfg.suggestMinLength,
		CacheTTL:  cfg.suggestCacheTTL,
	}, metrics.SuggestCache(), cfg.logger)

	savedSvc := savedsearchuc.New(saved, cfg.logger)

	backend := searchuc.New(docs, analyticsSvc, suggestSvc, savedSvc, cfg.logger).
		WithTracking(cfg.tracking)

	return &Client{
		backend:   backend,
		suggest:   suggestSvc,
		analytics: analyticsSvc,
		saved:     savedSvc,
	}
}

// Close releases the database connection, if any.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity. Always nil in memory mode.
func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search returns the search service.
func (c *Client) Search() *SearchService {
	return &SearchService{svc: c.backend}
}

// Documents returns the document index service.
func (c *Client) Documents() *DocumentService {
	return &DocumentService{svc: c.backend}
}

// Analytics returns the search analytics service.
func (c *Client) Analytics() *AnalyticsService {
	return &AnalyticsService{svc: c.analytics}
}

// SavedSearches returns the saved search service.
func (c *Client) SavedSearches() *SavedSearchService {
	return &SavedSearchService{svc: c.saved}
}
