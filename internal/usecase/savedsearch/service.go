// Package savedsearch manages named query snapshots with per-user
// ownership. Only the owner may modify or delete a search; public
// searches are readable by everyone.
package savedsearch

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain"
	domsaved "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/savedsearch"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/search/query"
)

// Params describes a saved search to create.
type Params struct {
	OwnerID     string
	Name        string
	Description string
	QueryText   string
	Filters     []query.FilterClause
	Sort        []query.SortClause
	IsPublic    bool
	Tags        []string
}

// Service manages saved searches.
type Service struct {
	store  Store
	logger *zap.Logger
}

// New creates a saved search service.
func New(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Create validates and persists a new saved search with a generated ID.
func (s *Service) Create(ctx context.Context, p Params) (domsaved.SavedSearch, error) {
	saved, err := domsaved.New(
		uuid.NewString(), p.OwnerID, p.Name, p.Description,
		p.QueryText, p.Filters, p.Sort,
		p.IsPublic, p.Tags,
	)
	if err != nil {
		return domsaved.SavedSearch{}, err
	}
	if err := s.store.Upsert(ctx, &saved); err != nil {
		s.logger.Error("create saved search failed", zap.String("name", p.Name), zap.Error(err))
		return domsaved.SavedSearch{}, err
	}
	return saved, nil
}

// Save persists an already-built saved search. Returns false on store
// failure.
func (s *Service) Save(ctx context.Context, saved *domsaved.SavedSearch) bool {
	if saved == nil || saved.ID() == "" {
		return false
	}
	if err := s.store.Upsert(ctx, saved); err != nil {
		s.logger.Error("save search failed", zap.String("id", saved.ID()), zap.Error(err))
		return false
	}
	return true
}

// Get returns a saved search if it exists and is visible to userID.
// Hidden searches are indistinguishable from missing ones.
func (s *Service) Get(ctx context.Context, id, userID string) (domsaved.SavedSearch, error) {
	saved, err := s.store.Get(ctx, id)
	if err != nil {
		return domsaved.SavedSearch{}, err
	}
	if !saved.VisibleTo(userID) {
		return domsaved.SavedSearch{}, domain.ErrSavedSearchNotFound
	}
	return saved, nil
}

// Update renames a saved search. Only the owner may update; a non-owner
// gets the same false as a missing ID.
func (s *Service) Update(ctx context.Context, id, userID, name, description string, isPublic bool, tags []string) bool {
	saved, err := s.store.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrSavedSearchNotFound) {
			s.logger.Error("update saved search failed", zap.String("id", id), zap.Error(err))
		}
		return false
	}
	if saved.OwnerID() != userID {
		return false
	}
	if err := saved.Rename(name, description, isPublic, tags); err != nil {
		return false
	}
	if err := s.store.Upsert(ctx, &saved); err != nil {
		s.logger.Error("update saved search failed", zap.String("id", id), zap.Error(err))
		return false
	}
	return true
}

// Delete removes a saved search. Only the owner may delete; a non-owner
// gets the same false as a missing ID.
func (s *Service) Delete(ctx context.Context, id, userID string) bool {
	saved, err := s.store.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrSavedSearchNotFound) {
			s.logger.Error("delete saved search failed", zap.String("id", id), zap.Error(err))
		}
		return false
	}
	if saved.OwnerID() != userID {
		return false
	}
	if err := s.store.Delete(ctx, id, saved.OwnerID()); err != nil {
		s.logger.Error("delete saved search failed", zap.String("id", id), zap.Error(err))
		return false
	}
	return true
}

// List returns the user's saved searches, optionally merged with public
// searches from other users. Duplicates are collapsed by ID.
func (s *Service) List(ctx context.Context, userID string, includePublic bool) []domsaved.SavedSearch {
	var out []domsaved.SavedSearch
	seen := make(map[string]struct{})

	if userID != "" {
		owned, err := s.store.ListByOwner(ctx, userID)
		if err != nil {
			s.logger.Error("list saved searches failed", zap.String("user_id", userID), zap.Error(err))
			return nil
		}
		for i := range owned {
			seen[owned[i].ID()] = struct{}{}
			out = append(out, owned[i])
		}
	}

	if includePublic {
		public, err := s.store.ListPublic(ctx)
		if err != nil {
			s.logger.Error("list public searches failed", zap.Error(err))
			return out
		}
		for i := range public {
			if _, dup := seen[public[i].ID()]; dup {
				continue
			}
			out = append(out, public[i])
		}
	}
	return out
}
