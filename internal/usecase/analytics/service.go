// Package analytics records search events and derives popularity,
// trend, and failure reports from the event log.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/cache"
	domana "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/analytics"
)

// DefaultWindowDays is the fallback report window for malformed inputs.
const DefaultWindowDays = 7

// MaxWindowDays bounds report windows; larger requests fall back to the
// default window.
const MaxWindowDays = 365

// Config tunes the analytics engine.
type Config struct {
	CacheTTL           time.Duration // report cache TTL (default 5m)
	MaxEventSample     int           // cap on events scanned per report (default 10000)
	ExcludeZeroResults bool          // drop failed queries from popularity
}

// Defaults fills unset config fields.
func (c Config) Defaults() Config {
	if c.CacheTTL <= 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.MaxEventSample <= 0 {
		c.MaxEventSample = 10000
	}
	return c
}

// Service is the analytics engine.
type Service struct {
	log           EventLog
	cfg           Config
	popularCache  *cache.TTL[[]domana.PopularQuery]
	trendingCache *cache.TTL[[]domana.TrendingQuery]
	failedCache   *cache.TTL[[]domana.FailedQuery]
	metricsCache  *cache.TTL[domana.Metrics]
	logger        *zap.Logger
	now           func() time.Time
}

// New creates an analytics service.
func New(log EventLog, cfg Config, logger *zap.Logger) *Service {
	cfg = cfg.Defaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		log:           log,
		cfg:           cfg,
		popularCache:  cache.NewTTL[[]domana.PopularQuery](cfg.CacheTTL),
		trendingCache: cache.NewTTL[[]domana.TrendingQuery](cfg.CacheTTL),
		failedCache:   cache.NewTTL[[]domana.FailedQuery](cfg.CacheTTL),
		metricsCache:  cache.NewTTL[domana.Metrics](cfg.CacheTTL),
		logger:        logger,
		now:           time.Now,
	}
}

// WithClock overrides the time source (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// TrackSearch appends one immutable search event. Missing IDs and
// timestamps are filled in. Returns false on store failure.
func (s *Service) TrackSearch(ctx context.Context, ev domana.Event) bool {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = s.now().UTC()
	}
	if ev.ResultCount < 0 {
		ev.ResultCount = 0
	}
	if err := s.log.AppendSearch(ctx, ev); err != nil {
		s.logger.Error("track search failed", zap.String("query", ev.Query), zap.Error(err))
		return false
	}
	return true
}

// TrackClick appends one click event. Returns false on store failure.
func (s *Service) TrackClick(ctx context.Context, queryText, resultID string, position int, userID string) bool {
	ev := domana.ClickEvent{
		ID:        uuid.NewString(),
		Query:     queryText,
		ResultID:  resultID,
		Position:  position,
		UserID:    userID,
		Timestamp: s.now().UTC(),
	}
	if err := s.log.AppendClick(ctx, ev); err != nil {
		s.logger.Error("track click failed", zap.String("query", queryText), zap.Error(err))
		return false
	}
	return true
}

// windowDays normalizes a day-count parameter, falling back to
// DefaultWindowDays for malformed values.
func windowDays(days int) int {
	if days <= 0 || days > MaxWindowDays {
		return DefaultWindowDays
	}
	return days
}

func (s *Service) eventsInWindow(ctx context.Context, days int) []domana.Event {
	now := s.now().UTC()
	events, err := s.log.SearchEvents(ctx, now.AddDate(0, 0, -days), now, s.cfg.MaxEventSample)
	if err != nil {
		s.logger.Error("read search events failed", zap.Int("days", days), zap.Error(err))
		return nil
	}
	return events
}

func cacheKey(name string, limit, days int) string {
	return fmt.Sprintf("%s:%d:%d", name, limit, days)
}
