// Package savedsearch persists saved searches as JSON values with
// owner and public membership sets for listing.
package savedsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/db"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain"
	domsaved "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/savedsearch"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/search/query"
)

// store is the consumer interface for saved searches (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

type savedDTO struct {
	ID          string      `json:"id"`
	OwnerID     string      `json:"owner_id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Query       string      `json:"query,omitempty"`
	Filters     []clauseDTO `json:"filters,omitempty"`
	Sort        []sortDTO   `json:"sort,omitempty"`
	IsPublic    bool        `json:"is_public"`
	Tags        []string    `json:"tags,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type clauseDTO struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

type sortDTO struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// Repo implements the saved search store port over db.Store.
type Repo struct {
	store store
}

// New creates a saved search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert stores a saved search and maintains the owner/public sets.
func (r *Repo) Upsert(ctx context.Context, s *domsaved.SavedSearch) error {
	data, err := json.Marshal(toDTO(s))
	if err != nil {
		return fmt.Errorf("marshal saved search: %w", err)
	}
	if err := r.store.Set(ctx, savedKey(s.ID()), data); err != nil {
		return fmt.Errorf("set saved search %s: %w", s.ID(), err)
	}
	if err := r.store.SAdd(ctx, ownerSetKey(s.OwnerID()), s.ID()); err != nil {
		return fmt.Errorf("add to owner set: %w", err)
	}
	if s.IsPublic() {
		if err := r.store.SAdd(ctx, publicSetKey(), s.ID()); err != nil {
			return fmt.Errorf("add to public set: %w", err)
		}
	} else if err := r.store.SRem(ctx, publicSetKey(), s.ID()); err != nil {
		return fmt.Errorf("remove from public set: %w", err)
	}
	return nil
}

// Get returns a saved search by ID.
func (r *Repo) Get(ctx context.Context, id string) (domsaved.SavedSearch, error) {
	raw, err := r.store.Get(ctx, savedKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domsaved.SavedSearch{}, domain.ErrSavedSearchNotFound
		}
		return domsaved.SavedSearch{}, fmt.Errorf("get saved search %s: %w", id, err)
	}
	var dto savedDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return domsaved.SavedSearch{}, fmt.Errorf("unmarshal saved search %s: %w", id, err)
	}
	return dto.toDomain(), nil
}

// Delete removes a saved search and its set memberships.
func (r *Repo) Delete(ctx context.Context, id, ownerID string) error {
	if err := r.store.Del(ctx, savedKey(id)); err != nil {
		return fmt.Errorf("del saved search %s: %w", id, err)
	}
	if err := r.store.SRem(ctx, ownerSetKey(ownerID), id); err != nil {
		return fmt.Errorf("remove from owner set: %w", err)
	}
	if err := r.store.SRem(ctx, publicSetKey(), id); err != nil {
		return fmt.Errorf("remove from public set: %w", err)
	}
	return nil
}

// ListByOwner returns all saved searches owned by ownerID.
func (r *Repo) ListByOwner(ctx context.Context, ownerID string) ([]domsaved.SavedSearch, error) {
	return r.listSet(ctx, ownerSetKey(ownerID))
}

// ListPublic returns all public saved searches.
func (r *Repo) ListPublic(ctx context.Context) ([]domsaved.SavedSearch, error) {
	return r.listSet(ctx, publicSetKey())
}

func (r *Repo) listSet(ctx context.Context, setKey string) ([]domsaved.SavedSearch, error) {
	ids, err := r.store.SMembers(ctx, setKey)
	if err != nil {
		return nil, fmt.Errorf("members %s: %w", setKey, err)
	}
	out := make([]domsaved.SavedSearch, 0, len(ids))
	for _, id := range ids {
		s, err := r.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrSavedSearchNotFound) {
				continue // stale set member
			}
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func toDTO(s *domsaved.SavedSearch) savedDTO {
	filters := make([]clauseDTO, len(s.Filters()))
	for i, c := range s.Filters() {
		filters[i] = clauseDTO{Field: c.Field, Operator: string(c.Operator), Value: c.Value}
	}
	sorts := make([]sortDTO, len(s.Sort()))
	for i, c := range s.Sort() {
		sorts[i] = sortDTO{Field: c.Field, Direction: string(c.Direction)}
	}
	return savedDTO{
		ID: s.ID(), OwnerID: s.OwnerID(), Name: s.Name(), Description: s.Description(),
		Query: s.QueryText(), Filters: filters, Sort: sorts,
		IsPublic: s.IsPublic(), Tags: s.Tags(),
		CreatedAt: s.CreatedAt(), UpdatedAt: s.UpdatedAt(),
	}
}

func (d savedDTO) toDomain() domsaved.SavedSearch {
	filters := make([]query.FilterClause, len(d.Filters))
	for i, c := range d.Filters {
		filters[i] = query.FilterClause{Field: c.Field, Operator: query.Operator(c.Operator), Value: c.Value}
	}
	sorts := make([]query.SortClause, len(d.Sort))
	for i, c := range d.Sort {
		sorts[i] = query.SortClause{Field: c.Field, Direction: query.Direction(c.Direction)}
	}
	return domsaved.Reconstruct(
		d.ID, d.OwnerID, d.Name, d.Description,
		d.Query, filters, sorts,
		d.IsPublic, d.Tags,
		d.CreatedAt, d.UpdatedAt,
	)
}

func savedKey(id string) string { return domain.KeyPrefix + "saved:" + id }

func ownerSetKey(ownerID string) string { return domain.KeyPrefix + "saved:owner:" + ownerID }

func publicSetKey() string { return domain.KeyPrefix + "saved:public" }
