package contentsearch

import (
	"context"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/search/query"
	searchuc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/usecase/search"
)

// SearchService executes queries against the index.
type SearchService struct {
	svc *searchuc.Service
}

// Query executes a search. It never fails: store errors degrade to an
// empty response stamped with the elapsed time.
func (s *SearchService) Query(ctx context.Context, req Request) Response {
	b := query.NewBuilder().
		Text(req.Text).
		FromFilters(toAdvancedFilters(req.Filters)).
		Facet(req.Facets...).
		Highlight(req.HighlightFields...).
		Paginate(req.Page, req.PageSize)
	for _, sc := range req.Sort {
		dir := query.Asc
		if sc.Descending {
			dir = query.Desc
		}
		b.SortBy(sc.Field, dir)
	}

	res := s.svc.Search(ctx, b.Build(), req.OwnerFilter)
	return fromInternalResult(res)
}

// Suggest returns ranked autocomplete suggestions for a partial query.
func (s *SearchService) Suggest(ctx context.Context, partial string, limit int) []Suggestion {
	return fromInternalSuggestions(s.svc.Suggest(ctx, partial, limit))
}

// Popular returns the most searched queries over the last days.
func (s *SearchService) Popular(ctx context.Context, limit, days int) []PopularQuery {
	return fromInternalPopular(s.svc.GetPopularSearches(ctx, limit, days))
}
