// Package savedsearch models named, persisted query snapshots.
package savedsearch

import (
	"fmt"
	"time"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/search/query"
)

// SavedSearch is a named snapshot of a query a user can re-run later.
type SavedSearch struct {
	id          string
	ownerID     string
	name        string
	description string
	queryText   string
	filters     []query.FilterClause
	sort        []query.SortClause
	isPublic    bool
	tags        []string
	createdAt   time.Time
	updatedAt   time.Time
}

// New validates and creates a SavedSearch.
func New(
	id, ownerID, name, description string,
	queryText string, filters []query.FilterClause, sortClauses []query.SortClause,
	isPublic bool, tags []string,
) (SavedSearch, error) {
	if id == "" {
		return SavedSearch{}, fmt.Errorf("saved search ID is required")
	}
	if ownerID == "" {
		return SavedSearch{}, fmt.Errorf("owner ID is required")
	}
	if name == "" {
		return SavedSearch{}, fmt.Errorf("name is required")
	}
	now := time.Now().UTC()
	return SavedSearch{
		id: id, ownerID: ownerID, name: name, description: description,
		queryText: queryText, filters: filters, sort: sortClauses,
		isPublic: isPublic, tags: tags,
		createdAt: now, updatedAt: now,
	}, nil
}

// Reconstruct creates a SavedSearch without validation (storage hydration).
func Reconstruct(
	id, ownerID, name, description string,
	queryText string, filters []query.FilterClause, sortClauses []query.SortClause,
	isPublic bool, tags []string,
	createdAt, updatedAt time.Time,
) SavedSearch {
	return SavedSearch{
		id: id, ownerID: ownerID, name: name, description: description,
		queryText: queryText, filters: filters, sort: sortClauses,
		isPublic: isPublic, tags: tags,
		createdAt: createdAt, updatedAt: updatedAt,
	}
}

// ID returns the saved search identifier.
func (s *SavedSearch) ID() string { return s.id }

// OwnerID returns the owning user's identifier.
func (s *SavedSearch) OwnerID() string { return s.ownerID }

// Name returns the display name.
func (s *SavedSearch) Name() string { return s.name }

// Description returns the optional description.
func (s *SavedSearch) Description() string { return s.description }

// QueryText returns the snapshot query text.
func (s *SavedSearch) QueryText() string { return s.queryText }

// Filters returns the snapshot filter clauses.
func (s *SavedSearch) Filters() []query.FilterClause { return s.filters }

// Sort returns the snapshot sort clauses.
func (s *SavedSearch) Sort() []query.SortClause { return s.sort }

// IsPublic reports whether non-owners may see this search.
func (s *SavedSearch) IsPublic() bool { return s.isPublic }

// Tags returns the user-assigned tags.
func (s *SavedSearch) Tags() []string { return s.tags }

// CreatedAt returns the creation time.
func (s *SavedSearch) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the last modification time.
func (s *SavedSearch) UpdatedAt() time.Time { return s.updatedAt }

// VisibleTo reports whether the given user may read this search.
func (s *SavedSearch) VisibleTo(userID string) bool {
	return s.isPublic || s.ownerID == userID
}

// Rename updates name/description/visibility/tags and bumps UpdatedAt.
func (s *SavedSearch) Rename(name, description string, isPublic bool, tags []string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	s.name = name
	s.description = description
	s.isPublic = isPublic
	s.tags = tags
	s.updatedAt = time.Now().UTC()
	return nil
}
