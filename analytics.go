package contentsearch

import (
	"context"
	"time"

	domana "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/analytics"
	analyticsuc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/usecase/analytics"
)

// AnalyticsService records search activity and derives reports.
type AnalyticsService struct {
	svc *analyticsuc.Service
}

// SearchEvent is one search to record. ID and timestamp are filled in
// when omitted.
type SearchEvent struct {
	Query            string
	UserID           string
	Timestamp        time.Time
	ResultCount      int
	SearchDurationMs float64
	ClickedResultIDs []string
	FiltersUsed      map[string]any
	FacetsUsed       []string
}

// TrackSearch appends one search event. Returns false on store failure.
func (a *AnalyticsService) TrackSearch(ctx context.Context, ev SearchEvent) bool {
	return a.svc.TrackSearch(ctx, domana.Event{
		Query:            ev.Query,
		UserID:           ev.UserID,
		Timestamp:        ev.Timestamp,
		ResultCount:      ev.ResultCount,
		SearchDurationMs: ev.SearchDurationMs,
		ClickedResultIDs: ev.ClickedResultIDs,
		FiltersUsed:      ev.FiltersUsed,
		FacetsUsed:       ev.FacetsUsed,
	})
}

// TrackClick appends one result click event.
func (a *AnalyticsService) TrackClick(ctx context.Context, queryText, resultID string, position int, userID string) bool {
	return a.svc.TrackClick(ctx, queryText, resultID, position, userID)
}

// Popular returns the most searched queries over the last days.
func (a *AnalyticsService) Popular(ctx context.Context, limit, days int) []PopularQuery {
	return fromInternalPopular(a.svc.PopularSearches(ctx, limit, days))
}

// Trending compares query frequency in a short current window against
// a longer preceding window.
func (a *AnalyticsService) Trending(ctx context.Context, limit, currentDays, previousDays int) []TrendingQuery {
	in := a.svc.TrendingSearches(ctx, limit, currentDays, previousDays)
	out := make([]TrendingQuery, len(in))
	for i, t := range in {
		out[i] = TrendingQuery(t)
	}
	return out
}

// Failed returns the queries that most often produced zero results.
func (a *AnalyticsService) Failed(ctx context.Context, limit, days int) []FailedQuery {
	in := a.svc.FailedSearches(ctx, limit, days)
	out := make([]FailedQuery, len(in))
	for i, f := range in {
		out[i] = FailedQuery(f)
	}
	return out
}

// History returns a user's recent searches, newest first.
func (a *AnalyticsService) History(ctx context.Context, userID string, limit, days int) []SearchEvent {
	in := a.svc.UserHistory(ctx, userID, limit, days)
	out := make([]SearchEvent, len(in))
	for i, ev := range in {
		out[i] = SearchEvent{
			Query:            ev.Query,
			UserID:           ev.UserID,
			Timestamp:        ev.Timestamp,
			ResultCount:      ev.ResultCount,
			SearchDurationMs: ev.SearchDurationMs,
			ClickedResultIDs: ev.ClickedResultIDs,
			FiltersUsed:      ev.FiltersUsed,
			FacetsUsed:       ev.FacetsUsed,
		}
	}
	return out
}

// Metrics aggregates search activity over a window of days.
func (a *AnalyticsService) Metrics(ctx context.Context, days int) Metrics {
	return Metrics(a.svc.SearchMetrics(ctx, days))
}
