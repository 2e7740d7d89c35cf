package contentsearch

import (
	"context"
	"fmt"

	savedsearchuc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/usecase/savedsearch"
)

// SavedSearchService manages named query snapshots with per-user
// ownership.
type SavedSearchService struct {
	svc *savedsearchuc.Service
}

// SavedSearchParams describes a saved search to create.
type SavedSearchParams struct {
	OwnerID     string
	Name        string
	Description string
	QueryText   string
	Filters     []FilterClause
	IsPublic    bool
	Tags        []string
}

// Create validates and persists a new saved search with a generated ID.
func (s *SavedSearchService) Create(ctx context.Context, p SavedSearchParams) (SavedSearch, error) {
	saved, err := s.svc.Create(ctx, savedsearchuc.Params{
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		QueryText:   p.QueryText,
		Filters:     toInternalClauses(p.Filters),
		IsPublic:    p.IsPublic,
		Tags:        p.Tags,
	})
	if err != nil {
		return SavedSearch{}, fmt.Errorf("create saved search: %w", err)
	}
	return fromInternalSaved(&saved), nil
}

// Get returns a saved search if it exists and is visible to userID.
func (s *SavedSearchService) Get(ctx context.Context, id, userID string) (SavedSearch, error) {
	saved, err := s.svc.Get(ctx, id, userID)
	if err != nil {
		return SavedSearch{}, fmt.Errorf("get saved search: %w", err)
	}
	return fromInternalSaved(&saved), nil
}

// Update renames a saved search. Only the owner may update; a non-owner
// gets the same false as a missing ID.
func (s *SavedSearchService) Update(ctx context.Context, id, userID, name, description string, isPublic bool, tags []string) bool {
	return s.svc.Update(ctx, id, userID, name, description, isPublic, tags)
}

// Delete removes a saved search. Only the owner may delete.
func (s *SavedSearchService) Delete(ctx context.Context, id, userID string) bool {
	return s.svc.Delete(ctx, id, userID)
}

// List returns the user's saved searches, optionally merged with public
// searches from other users.
func (s *SavedSearchService) List(ctx context.Context, userID string, includePublic bool) []SavedSearch {
	in := s.svc.List(ctx, userID, includePublic)
	out := make([]SavedSearch, len(in))
	for i := range in {
		out[i] = fromInternalSaved(&in[i])
	}
	return out
}
