package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	domana "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/analytics"
)

// DefaultReportLimit is the fallback entry count for report queries.
const DefaultReportLimit = 10

func reportLimit(limit int) int {
	if limit <= 0 {
		return DefaultReportLimit
	}
	return limit
}

type queryStats struct {
	query      string
	count      int
	users      map[string]struct{}
	results    int
	durationMs float64
	clicked    int
	lastSeen   time.Time
}

// PopularSearches returns the most searched queries inside the window,
// with unique user counts, averages, and click-through rates.
func (s *Service) PopularSearches(ctx context.Context, limit, days int) []domana.PopularQuery {
	limit = reportLimit(limit)
	days = windowDays(days)

	key := cacheKey("popular", limit, days)
	if cached, ok := s.popularCache.Get(key); ok {
		return cached
	}

	events := s.eventsInWindow(ctx, days)
	stats := make(map[string]*queryStats)
	for _, ev := range events {
		q := strings.ToLower(strings.TrimSpace(ev.Query))
		if q == "" {
			continue
		}
		if s.cfg.ExcludeZeroResults && !ev.Succeeded() {
			continue
		}
		st, ok := stats[q]
		if !ok {
			st = &queryStats{query: q, users: make(map[string]struct{})}
			stats[q] = st
		}
		st.count++
		if ev.UserID != "" {
			st.users[ev.UserID] = struct{}{}
		}
		st.results += ev.ResultCount
		st.durationMs += ev.SearchDurationMs
		if ev.Clicked() {
			st.clicked++
		}
	}

	report := make([]domana.PopularQuery, 0, len(stats))
	for _, st := range stats {
		n := float64(st.count)
		ctr := float64(st.clicked) / n
		if ctr > 1 {
			ctr = 1
		}
		report = append(report, domana.PopularQuery{
			Query:            st.query,
			SearchCount:      st.count,
			UniqueUsers:      len(st.users),
			AvgResults:       float64(st.results) / n,
			AvgDurationMs:    st.durationMs / n,
			ClickThroughRate: ctr,
		})
	}
	sort.Slice(report, func(i, j int) bool {
		if report[i].SearchCount != report[j].SearchCount {
			return report[i].SearchCount > report[j].SearchCount
		}
		return report[i].Query < report[j].Query
	})
	if len(report) > limit {
		report = report[:limit]
	}

	s.popularCache.Set(key, report)
	return report
}

// TrendingSearches compares query frequency in a short current window
// against a longer preceding window. Queries absent from the previous
// window are flagged new and scored by their current count.
func (s *Service) TrendingSearches(ctx context.Context, limit, currentDays, previousDays int) []domana.TrendingQuery {
	limit = reportLimit(limit)
	if currentDays <= 0 || currentDays > MaxWindowDays {
		currentDays = 1
	}
	previousDays = windowDays(previousDays)

	key := fmt.Sprintf("trending:%d:%d:%d", limit, currentDays, previousDays)
	if cached, ok := s.trendingCache.Get(key); ok {
		return cached
	}

	now := s.now().UTC()
	mid := now.AddDate(0, 0, -currentDays)
	start := mid.AddDate(0, 0, -previousDays)

	events, err := s.log.SearchEvents(ctx, start, now, 2*s.cfg.MaxEventSample)
	if err != nil {
		s.logger.Error("read search events failed", zap.Int("current_days", currentDays), zap.Int("previous_days", previousDays), zap.Error(err))
		return nil
	}

	current := make(map[string]int)
	previous := make(map[string]int)
	for _, ev := range events {
		q := strings.ToLower(strings.TrimSpace(ev.Query))
		if q == "" {
			continue
		}
		if ev.Timestamp.Before(mid) {
			previous[q]++
		} else {
			current[q]++
		}
	}

	report := make([]domana.TrendingQuery, 0, len(current))
	for q, cur := range current {
		prev := previous[q]
		entry := domana.TrendingQuery{
			Query:         q,
			CurrentCount:  cur,
			PreviousCount: prev,
		}
		if prev == 0 {
			entry.IsNew = true
			entry.TrendScore = float64(cur)
		} else {
			entry.TrendScore = float64(cur-prev) / float64(prev)
		}
		if entry.TrendScore <= 0 {
			continue
		}
		report = append(report, entry)
	}
	sort.Slice(report, func(i, j int) bool {
		if report[i].TrendScore != report[j].TrendScore {
			return report[i].TrendScore > report[j].TrendScore
		}
		return report[i].Query < report[j].Query
	})
	if len(report) > limit {
		report = report[:limit]
	}

	s.trendingCache.Set(key, report)
	return report
}

// FailedSearches returns the queries that most often produced zero
// results inside the window.
func (s *Service) FailedSearches(ctx context.Context, limit, days int) []domana.FailedQuery {
	limit = reportLimit(limit)
	days = windowDays(days)

	key := cacheKey("failed", limit, days)
	if cached, ok := s.failedCache.Get(key); ok {
		return cached
	}

	events := s.eventsInWindow(ctx, days)
	counts := make(map[string]*domana.FailedQuery)
	for _, ev := range events {
		if ev.Succeeded() {
			continue
		}
		q := strings.ToLower(strings.TrimSpace(ev.Query))
		if q == "" {
			continue
		}
		entry, ok := counts[q]
		if !ok {
			entry = &domana.FailedQuery{Query: q}
			counts[q] = entry
		}
		entry.FailureCount++
		if ev.Timestamp.After(entry.LastSeen) {
			entry.LastSeen = ev.Timestamp
		}
	}

	report := make([]domana.FailedQuery, 0, len(counts))
	for _, entry := range counts {
		report = append(report, *entry)
	}
	sort.Slice(report, func(i, j int) bool {
		if report[i].FailureCount != report[j].FailureCount {
			return report[i].FailureCount > report[j].FailureCount
		}
		return report[i].Query < report[j].Query
	})
	if len(report) > limit {
		report = report[:limit]
	}

	s.failedCache.Set(key, report)
	return report
}

// UserHistory returns a user's recent searches, newest first.
func (s *Service) UserHistory(ctx context.Context, userID string, limit, days int) []domana.Event {
	limit = reportLimit(limit)
	days = windowDays(days)
	if userID == "" {
		return nil
	}

	events := s.eventsInWindow(ctx, days)
	history := make([]domana.Event, 0, limit)
	for _, ev := range events {
		if ev.UserID == userID {
			history = append(history, ev)
		}
	}
	sort.Slice(history, func(i, j int) bool {
		return history[i].Timestamp.After(history[j].Timestamp)
	})
	if len(history) > limit {
		history = history[:limit]
	}
	return history
}

// SearchMetrics aggregates search activity over the window.
func (s *Service) SearchMetrics(ctx context.Context, days int) domana.Metrics {
	days = windowDays(days)

	key := cacheKey("metrics", 0, days)
	if cached, ok := s.metricsCache.Get(key); ok {
		return cached
	}

	events := s.eventsInWindow(ctx, days)
	var m domana.Metrics
	if len(events) == 0 {
		return m
	}

	users := make(map[string]struct{})
	var durationMs float64
	var results, succeeded, clicked int
	for _, ev := range events {
		if ev.UserID != "" {
			users[ev.UserID] = struct{}{}
		}
		durationMs += ev.SearchDurationMs
		results += ev.ResultCount
		if ev.Succeeded() {
			succeeded++
		}
		if ev.Clicked() {
			clicked++
		}
	}

	n := float64(len(events))
	m.TotalSearches = len(events)
	m.UniqueUsers = len(users)
	if len(users) > 0 {
		m.AvgSearchesPerUser = n / float64(len(users))
	}
	m.AvgDurationMs = durationMs / n
	m.AvgResultsPerSearch = float64(results) / n
	m.SearchSuccessRate = float64(succeeded) / n
	m.ClickThroughRate = float64(clicked) / n

	s.metricsCache.Set(key, m)
	return m
}
