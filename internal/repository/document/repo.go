// Package document persists indexed documents in a key-value store.
// Filtered queries are answered by scanning the key prefix and applying
// clause predicates client-side; there is no server-side text index.
package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/db"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain"
	domdoc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/search/query"
)

// store is the consumer interface for documents (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements the document store port over db.Store.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert creates or updates a document. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, doc *domdoc.Document) (bool, error) {
	key := docKey(doc.ID())
	data, err := json.Marshal(toDTO(doc))
	if err != nil {
		return false, fmt.Errorf("marshal document: %w", err)
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.Set(ctx, key, data); err != nil {
		return false, fmt.Errorf("set %s: %w", key, err)
	}
	return !exists, nil
}

// Get returns a document by ID.
func (r *Repo) Get(ctx context.Context, id string) (domdoc.Document, error) {
	key := docKey(id)
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domdoc.Document{}, domain.ErrDocumentNotFound
		}
		return domdoc.Document{}, fmt.Errorf("get %s: %w", key, err)
	}
	var dto docDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return domdoc.Document{}, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return dto.toDomain(), nil
}

// Delete removes a document.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := docKey(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrDocumentNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Find returns every document satisfying all filter clauses.
func (r *Repo) Find(ctx context.Context, clauses []query.FilterClause) ([]domdoc.Document, error) {
	keys, err := r.store.Scan(ctx, docKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan documents: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	raws, err := r.store.MGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("mget documents: %w", err)
	}

	docs := make([]domdoc.Document, 0, len(raws))
	for _, raw := range raws {
		if raw == nil {
			continue // deleted between scan and fetch
		}
		var dto docDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			continue
		}
		doc := dto.toDomain()
		if query.Matches(&doc, clauses) {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// Count returns the number of indexed documents.
func (r *Repo) Count(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, docKey("*"))
	if err != nil {
		return 0, fmt.Errorf("scan documents: %w", err)
	}
	return len(keys), nil
}

func docKey(id string) string {
	return domain.KeyPrefix + "doc:" + id
}
