package search

import (
	"context"
	"time"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/analytics"
	dombatch "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/batch"
	domdoc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document/patch"
	domsaved "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/savedsearch"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/search/query"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/search/result"
	domsuggest "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/suggest"
)

// DocumentStore is the document persistence port. Find answers every
// filter clause combination the query model can express; sorting,
// scoring, and pagination happen in-process.
type DocumentStore interface {
	Upsert(ctx context.Context, doc *domdoc.Document) (created bool, err error)
	Get(ctx context.Context, id string) (domdoc.Document, error)
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, clauses []query.FilterClause) ([]domdoc.Document, error)
	Count(ctx context.Context) (int, error)
}

// Analyzer records search events and reports query popularity.
type Analyzer interface {
	TrackSearch(ctx context.Context, ev analytics.Event) bool
	PopularSearches(ctx context.Context, limit, days int) []analytics.PopularQuery
}

// Suggester produces ranked autocomplete suggestions.
type Suggester interface {
	GetSuggestions(
		ctx context.Context, partial, userID string,
		limit int, types []domsuggest.Type,
	) []domsuggest.Suggestion
}

// SavedSearches manages named query snapshots.
type SavedSearches interface {
	Save(ctx context.Context, s *domsaved.SavedSearch) bool
	List(ctx context.Context, userID string, includePublic bool) []domsaved.SavedSearch
	Delete(ctx context.Context, id, userID string) bool
}

// Backend is the full capability set of a search backend. Service is
// the scan-based reference implementation; alternative backends can be
// substituted without changing callers.
type Backend interface {
	Initialize(ctx context.Context) error
	IndexDocument(ctx context.Context, doc *domdoc.Document) bool
	BulkIndexDocuments(ctx context.Context, docs []domdoc.Document) dombatch.Report
	UpdateDocument(ctx context.Context, id string, p *patch.Patch) bool
	DeleteDocument(ctx context.Context, id string) bool
	Search(ctx context.Context, q query.SearchQuery, ownerFilter string) result.Result
	Suggest(ctx context.Context, partial string, limit int) []domsuggest.Suggestion
	GetPopularSearches(ctx context.Context, limit, days int) []analytics.PopularQuery
	TrackSearch(ctx context.Context, ev analytics.Event) bool
	SaveSearch(ctx context.Context, s *domsaved.SavedSearch) bool
	GetSavedSearches(ctx context.Context, userID string, includePublic bool) []domsaved.SavedSearch
	DeleteSavedSearch(ctx context.Context, id, userID string) bool
	RefreshIndex(ctx context.Context) bool
	GetIndexStats(ctx context.Context) Stats
}

// Stats describes the current index contents.
type Stats struct {
	TotalDocuments int            `json:"total_documents"`
	ByStatus       map[string]int `json:"by_status,omitempty"`
	ByContentType  map[string]int `json:"by_content_type,omitempty"`
	LastIndexedAt  time.Time      `json:"last_indexed_at,omitzero"`
}
