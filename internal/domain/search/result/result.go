// Package result models search hits and paginated result sets.
package result

import (
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/search/facet"
)

// Hit is a single scored search match.
type Hit struct {
	id         string
	score      float64
	source     document.Document
	highlights map[string][]string
}

// NewHit creates a search hit.
func NewHit(id string, score float64, source document.Document, highlights map[string][]string) Hit {
	return Hit{id: id, score: score, source: source, highlights: highlights}
}

// ID returns the matched document identifier.
func (h *Hit) ID() string { return h.id }

// Score returns the relevance score.
func (h *Hit) Score() float64 { return h.score }

// Source returns the snapshot of the matched document.
func (h *Hit) Source() document.Document { return h.source }

// Highlights returns highlighted fragments per field, or nil.
func (h *Hit) Highlights() map[string][]string { return h.highlights }

// Result is a paginated search outcome.
type Result struct {
	query       string
	total       int
	hits        []Hit
	facets      map[string]facet.Result
	page        int
	pageSize    int
	totalPages  int
	tookMs      float64
	suggestions []string
}

// New creates a search result. totalPages is derived from total and
// pageSize (0 when pageSize is 0).
func New(
	queryText string, total int, hits []Hit,
	facets map[string]facet.Result,
	page, pageSize int, tookMs float64,
	suggestions []string,
) Result {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return Result{
		query: queryText, total: total, hits: hits,
		facets: facets, page: page, pageSize: pageSize,
		totalPages: totalPages, tookMs: tookMs,
		suggestions: suggestions,
	}
}

// Empty returns a zero-hit result stamped with elapsed time.
// Failed searches degrade to this so callers never see an error.
func Empty(queryText string, page, pageSize int, tookMs float64) Result {
	return Result{query: queryText, page: page, pageSize: pageSize, tookMs: tookMs}
}

// Query returns the original query text.
func (r *Result) Query() string { return r.query }

// Total returns the total number of matching documents.
func (r *Result) Total() int { return r.total }

// Hits returns the current page of hits.
func (r *Result) Hits() []Hit { return r.hits }

// Facets returns the facet results, or nil if none were requested.
func (r *Result) Facets() map[string]facet.Result { return r.facets }

// Page returns the 1-based page number.
func (r *Result) Page() int { return r.page }

// PageSize returns the requested page size.
func (r *Result) PageSize() int { return r.pageSize }

// TotalPages returns the number of pages.
func (r *Result) TotalPages() int { return r.totalPages }

// TookMs returns the elapsed search time in milliseconds.
func (r *Result) TookMs() float64 { return r.tookMs }

// Suggestions returns alternative query suggestions, or nil.
func (r *Result) Suggestions() []string { return r.suggestions }
