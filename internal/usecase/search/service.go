// Package search implements the scan-based search backend: candidate
// documents are fetched from the store via filter pushdown, then
// scored, highlighted, faceted, and paginated in-process.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/analytics"
	dombatch "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/batch"
	domdoc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document/patch"
	domsaved "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/savedsearch"
	domfacet "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/search/facet"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/search/query"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/search/result"
	domsuggest "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/suggest"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/facet"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/metrics"
)

// Scoring weights for free-text relevance.
const (
	titleMatchWeight = 2.0
	textOccurWeight  = 0.5
)

// Compile-time check: Service implements Backend.
var _ Backend = (*Service)(nil)

// Service is the scan-based Backend reference implementation.
type Service struct {
	docs          DocumentStore
	analyzer      Analyzer
	suggester     Suggester
	saved         SavedSearches
	facetConfigs  map[string]domfacet.Config
	trackSearches bool
	logger        *zap.Logger
}

// New creates a search service. analyzer, suggester, and saved may be
// nil; the corresponding operations then degrade to no-ops.
func New(docs DocumentStore, analyzer Analyzer, suggester Suggester, saved SavedSearches, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		docs:          docs,
		analyzer:      analyzer,
		suggester:     suggester,
		saved:         saved,
		facetConfigs:  make(map[string]domfacet.Config),
		trackSearches: analyzer != nil,
		logger:        logger,
	}
}

// WithFacetConfig sets the facet configuration for a field.
func (s *Service) WithFacetConfig(field string, cfg domfacet.Config) *Service {
	s.facetConfigs[field] = cfg
	return s
}

// WithTracking toggles analytics event emission on searches.
func (s *Service) WithTracking(enabled bool) *Service {
	s.trackSearches = enabled && s.analyzer != nil
	return s
}

// Initialize verifies the document store is reachable.
func (s *Service) Initialize(ctx context.Context) error {
	if _, err := s.docs.Count(ctx); err != nil {
		return fmt.Errorf("initialize search backend: %w", err)
	}
	return nil
}

// IndexDocument upserts one document. Returns false on store failure.
func (s *Service) IndexDocument(ctx context.Context, doc *domdoc.Document) bool {
	if _, err := s.docs.Upsert(ctx, doc); err != nil {
		s.logger.Error("index document failed", zap.String("id", doc.ID()), zap.Error(err))
		metrics.IncIndexOp("index", "error")
		return false
	}
	metrics.IncIndexOp("index", "ok")
	return true
}

// BulkIndexDocuments indexes documents independently, recording each
// failure and continuing; there is no partial rollback.
func (s *Service) BulkIndexDocuments(ctx context.Context, docs []domdoc.Document) dombatch.Report {
	results := make([]dombatch.Result, len(docs))
	for i := range docs {
		if _, err := s.docs.Upsert(ctx, &docs[i]); err != nil {
			results[i] = dombatch.NewError(docs[i].ID(), err)
			metrics.IncIndexOp("index", "error")
			continue
		}
		results[i] = dombatch.NewOK(docs[i].ID())
		metrics.IncIndexOp("index", "ok")
	}
	return dombatch.Summarize(results)
}

// UpdateDocument merges a partial update into an existing document.
// Returns false when the document is absent or the store fails. The
// searchable text is recomputed and timestamps bumped by the patch.
func (s *Service) UpdateDocument(ctx context.Context, id string, p *patch.Patch) bool {
	existing, err := s.docs.Get(ctx, id)
	if err != nil {
		s.logger.Warn("update of missing document", zap.String("id", id), zap.Error(err))
		metrics.IncIndexOp("update", "error")
		return false
	}
	updated, err := p.Apply(existing)
	if err != nil {
		s.logger.Error("apply update failed", zap.String("id", id), zap.Error(err))
		metrics.IncIndexOp("update", "error")
		return false
	}
	if _, err := s.docs.Upsert(ctx, &updated); err != nil {
		s.logger.Error("persist update failed", zap.String("id", id), zap.Error(err))
		metrics.IncIndexOp("update", "error")
		return false
	}
	metrics.IncIndexOp("update", "ok")
	return true
}

// DeleteDocument removes a document. Returns false when absent or on
// store failure.
func (s *Service) DeleteDocument(ctx context.Context, id string) bool {
	if err := s.docs.Delete(ctx, id); err != nil {
		s.logger.Warn("delete document failed", zap.String("id", id), zap.Error(err))
		metrics.IncIndexOp("delete", "error")
		return false
	}
	metrics.IncIndexOp("delete", "ok")
	return true
}

// Search executes a structured query. It never returns an error: any
// failure degrades to an empty result stamped with the elapsed time,
// so search-adjacent UI cannot hard-fail.
func (s *Service) Search(ctx context.Context, q query.SearchQuery, ownerFilter string) result.Result {
	start := time.Now()
	res, err := s.doSearch(ctx, q, ownerFilter, start)
	took := time.Since(start)
	if err != nil {
		s.logger.Error("search failed", zap.String("query", q.Text()), zap.Error(err))
		metrics.ObserveSearch(took.Seconds(), "error")
		return result.Empty(q.Text(), pageOf(q), q.Size(), float64(took.Microseconds())/1000.0)
	}
	outcome := "ok"
	if res.Total() == 0 {
		outcome = "empty"
	}
	metrics.ObserveSearch(took.Seconds(), outcome)
	return res
}

func (s *Service) doSearch(ctx context.Context, q query.SearchQuery, ownerFilter string, start time.Time) (result.Result, error) {
	clauses := q.Filters()
	if ownerFilter != "" {
		clauses = append(append([]query.FilterClause(nil), clauses...),
			query.FilterClause{Field: "owner_id", Operator: query.OpEq, Value: ownerFilter})
	}

	// Step 1: filter pushdown fetches the full candidate set.
	candidates, err := s.docs.Find(ctx, clauses)
	if err != nil {
		return result.Result{}, fmt.Errorf("fetch candidates: %w", err)
	}

	text := strings.TrimSpace(q.Text())
	var hits []result.Hit
	if text != "" {
		hits = s.scoreAndSort(candidates, text, q.HighlightFields())
	} else {
		sorted := append([]domdoc.Document(nil), candidates...)
		applySort(sorted, q.Sort())
		hits = make([]result.Hit, len(sorted))
		for i := range sorted {
			hits[i] = result.NewHit(sorted[i].ID(), 1.0, sorted[i], nil)
		}
	}

	total := len(hits)
	page := hits[min(q.Offset(), total):min(q.Offset()+q.Size(), total)]

	// Facets are computed over the filter-only candidate set, not the
	// text-matched hits: they answer "what values exist among eligible
	// documents".
	var facets map[string]domfacet.Result
	if len(q.Facets()) > 0 {
		facets = facet.Compute(candidates, q.Facets(), s.facetConfigs)
	}

	took := float64(time.Since(start).Microseconds()) / 1000.0

	var suggestions []string
	if total == 0 && text != "" && s.suggester != nil {
		for _, sug := range s.suggester.GetSuggestions(ctx, text, "", 3, nil) {
			suggestions = append(suggestions, sug.Text)
		}
	}

	if s.trackSearches {
		s.track(ctx, q, ownerFilter, total, took)
	}

	return result.New(q.Text(), total, page, facets, pageOf(q), q.Size(), took, suggestions), nil
}

func (s *Service) scoreAndSort(candidates []domdoc.Document, text string, highlightFields []string) []result.Hit {
	terms := strings.Fields(strings.ToLower(text))
	hits := make([]result.Hit, 0, len(candidates))
	for i := range candidates {
		doc := &candidates[i]
		score := scoreDocument(doc, terms)
		if score == 0 {
			continue
		}
		hits = append(hits, result.NewHit(
			doc.ID(), score, *doc, buildHighlights(doc, terms, highlightFields),
		))
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score() > hits[j].Score() })
	return hits
}

func (s *Service) track(ctx context.Context, q query.SearchQuery, ownerFilter string, total int, tookMs float64) {
	filters := make(map[string]any, len(q.Filters()))
	for _, c := range q.Filters() {
		filters[c.Field] = c.Value
	}
	ev := analytics.Event{
		Query:            q.Text(),
		UserID:           ownerFilter,
		Timestamp:        time.Now().UTC(),
		ResultCount:      total,
		SearchDurationMs: tookMs,
		FiltersUsed:      filters,
		FacetsUsed:       q.Facets(),
	}
	if ok := s.analyzer.TrackSearch(ctx, ev); !ok {
		s.logger.Debug("search event not recorded", zap.String("query", q.Text()))
	}
}

// Suggest returns ranked autocomplete suggestions for a partial query.
func (s *Service) Suggest(ctx context.Context, partial string, limit int) []domsuggest.Suggestion {
	if s.suggester == nil {
		return nil
	}
	return s.suggester.GetSuggestions(ctx, partial, "", limit, nil)
}

// GetPopularSearches reports the most frequent queries in the window.
func (s *Service) GetPopularSearches(ctx context.Context, limit, days int) []analytics.PopularQuery {
	if s.analyzer == nil {
		return nil
	}
	return s.analyzer.PopularSearches(ctx, limit, days)
}

// TrackSearch records an externally constructed search event.
func (s *Service) TrackSearch(ctx context.Context, ev analytics.Event) bool {
	if s.analyzer == nil {
		return false
	}
	return s.analyzer.TrackSearch(ctx, ev)
}

// SaveSearch persists a named query snapshot.
func (s *Service) SaveSearch(ctx context.Context, saved *domsaved.SavedSearch) bool {
	if s.saved == nil {
		return false
	}
	return s.saved.Save(ctx, saved)
}

// GetSavedSearches lists a user's saved searches, optionally with
// public ones from other users.
func (s *Service) GetSavedSearches(ctx context.Context, userID string, includePublic bool) []domsaved.SavedSearch {
	if s.saved == nil {
		return nil
	}
	return s.saved.List(ctx, userID, includePublic)
}

// DeleteSavedSearch removes a saved search if userID owns it.
func (s *Service) DeleteSavedSearch(ctx context.Context, id, userID string) bool {
	if s.saved == nil {
		return false
	}
	return s.saved.Delete(ctx, id, userID)
}

// RefreshIndex is a no-op for the scan-based backend: reads always see
// the latest stored documents. Kept for backend interface parity.
func (s *Service) RefreshIndex(ctx context.Context) bool {
	if err := ctx.Err(); err != nil {
		return false
	}
	return true
}

// GetIndexStats summarizes the current index contents.
func (s *Service) GetIndexStats(ctx context.Context) Stats {
	docs, err := s.docs.Find(ctx, nil)
	if err != nil {
		s.logger.Error("index stats failed", zap.Error(err))
		return Stats{}
	}
	stats := Stats{
		TotalDocuments: len(docs),
		ByStatus:       make(map[string]int),
		ByContentType:  make(map[string]int),
	}
	for i := range docs {
		stats.ByStatus[docs[i].Status()]++
		for _, ct := range strings.Split(docs[i].ContentType(), ",") {
			if ct = strings.TrimSpace(ct); ct != "" {
				stats.ByContentType[ct]++
			}
		}
		if docs[i].IndexedAt().After(stats.LastIndexedAt) {
			stats.LastIndexedAt = docs[i].IndexedAt()
		}
	}
	return stats
}

func pageOf(q query.SearchQuery) int {
	if q.Size() <= 0 {
		return 1
	}
	return q.Offset()/q.Size() + 1
}
