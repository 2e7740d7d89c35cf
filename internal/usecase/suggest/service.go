// Package suggest produces ranked autocomplete suggestions from four
// independent sources: recent popular queries, indexed content titles,
// tag/category values, and fuzzy spelling corrections.
package suggest

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/cache"
	domsuggest "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/suggest"
)

// Config tunes the suggestion engine.
type Config struct {
	MinLength      int           // shortest partial query served (default 2)
	CacheTTL       time.Duration // result cache TTL (default 60s)
	QueryWindow    time.Duration // event lookback for query suggestions (default 30d)
	VocabWindow    time.Duration // event lookback for corrections (default 7d)
	MaxEventSample int           // cap on events scanned per request (default 1000)
	MaxDocSample   int           // cap on documents scanned per request (default 500)
}

// Defaults fills unset config fields.
func (c Config) Defaults() Config {
	if c.MinLength <= 0 {
		c.MinLength = 2
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 60 * time.Second
	}
	if c.QueryWindow <= 0 {
		c.QueryWindow = 30 * 24 * time.Hour
	}
	if c.VocabWindow <= 0 {
		c.VocabWindow = 7 * 24 * time.Hour
	}
	if c.MaxEventSample <= 0 {
		c.MaxEventSample = 1000
	}
	if c.MaxDocSample <= 0 {
		c.MaxDocSample = 500
	}
	return c
}

// Service is the suggestion engine.
type Service struct {
	events     EventSource
	docs       DocumentSource
	cfg        Config
	cache      *cache.TTL[[]domsuggest.Suggestion]
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
	now        func() time.Time
}

// New creates a suggestion service. cacheTotal is a counter vec with
// label "result" ("hit"/"miss"); it may be nil.
func New(events EventSource, docs DocumentSource, cfg Config, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Service {
	cfg = cfg.Defaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		events:     events,
		docs:       docs,
		cfg:        cfg,
		cache:      cache.NewTTL[[]domsuggest.Suggestion](cfg.CacheTTL),
		cacheTotal: cacheTotal,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the time source (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetSuggestions returns merged, deduplicated suggestions for a partial
// query, truncated to limit. types restricts the active sources (nil =
// all). Failures in any single source degrade to fewer suggestions,
// never to an error.
func (s *Service) GetSuggestions(
	ctx context.Context, partial, userID string,
	limit int, types []domsuggest.Type,
) []domsuggest.Suggestion {
	partial = strings.ToLower(strings.TrimSpace(partial))
	if len(partial) < s.cfg.MinLength {
		return []domsuggest.Suggestion{}
	}
	if limit <= 0 {
		limit = 10
	}

	cacheKey := partial + "|" + userID
	if cached, ok := s.cache.Get(cacheKey); ok {
		s.incCache("hit")
		if len(cached) > limit {
			return cached[:limit]
		}
		return cached
	}
	s.incCache("miss")

	enabled := enabledTypes(types)
	var candidates []domsuggest.Suggestion
	if enabled[domsuggest.TypeQuery] {
		candidates = append(candidates, s.querySuggestions(ctx, partial, userID)...)
	}
	if enabled[domsuggest.TypeContent] {
		candidates = append(candidates, s.contentSuggestions(ctx, partial)...)
	}
	if enabled[domsuggest.TypeTag] {
		candidates = append(candidates, s.tagSuggestions(ctx, partial)...)
	}
	if enabled[domsuggest.TypeCorrection] {
		candidates = append(candidates, s.corrections(ctx, partial)...)
	}

	// Cache the full merge; the per-call limit is applied on the way
	// out so later calls with a larger limit are not short-changed.
	merged := domsuggest.Merge(candidates, 0)
	s.cache.Set(cacheKey, merged)
	if len(merged) > limit {
		return merged[:limit]
	}
	return merged
}

func (s *Service) incCache(result string) {
	if s.cacheTotal != nil {
		s.cacheTotal.WithLabelValues(result).Inc()
	}
}

func enabledTypes(types []domsuggest.Type) map[domsuggest.Type]bool {
	if len(types) == 0 {
		return map[domsuggest.Type]bool{
			domsuggest.TypeQuery:      true,
			domsuggest.TypeContent:    true,
			domsuggest.TypeTag:        true,
			domsuggest.TypeCorrection: true,
		}
	}
	enabled := make(map[domsuggest.Type]bool, len(types))
	for _, t := range types {
		enabled[t] = true
	}
	return enabled
}
