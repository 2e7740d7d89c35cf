// Package memory provides in-process implementations of the document,
// analytics, and saved-search store ports. Used by tests and by
// embedded deployments that run without Redis.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain"
	domana "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/analytics"
	domdoc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document"
	domsaved "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/savedsearch"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/search/query"
)

// DocumentStore is an in-memory document store port implementation.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]domdoc.Document
}

// NewDocumentStore creates an empty in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]domdoc.Document)}
}

// Upsert stores a document by ID. Returns true if created.
func (s *DocumentStore) Upsert(_ context.Context, doc *domdoc.Document) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.docs[doc.ID()]
	s.docs[doc.ID()] = *doc
	return !exists, nil
}

// Get returns a document by ID.
func (s *DocumentStore) Get(_ context.Context, id string) (domdoc.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return domdoc.Document{}, domain.ErrDocumentNotFound
	}
	return doc, nil
}

// Delete removes a document by ID.
func (s *DocumentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return domain.ErrDocumentNotFound
	}
	delete(s.docs, id)
	return nil
}

// Find returns every document satisfying all filter clauses, ordered by ID
// for determinism.
func (s *DocumentStore) Find(_ context.Context, clauses []query.FilterClause) ([]domdoc.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]domdoc.Document, 0, len(ids))
	for _, id := range ids {
		doc := s.docs[id]
		if query.Matches(&doc, clauses) {
			out = append(out, doc)
		}
	}
	return out, nil
}

// Count returns the number of stored documents.
func (s *DocumentStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs), nil
}

// EventLog is an in-memory analytics event log port implementation.
type EventLog struct {
	mu     sync.RWMutex
	events []domana.Event
	clicks []domana.ClickEvent
}

// NewEventLog creates an empty in-memory event log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// AppendSearch records one search event.
func (l *EventLog) AppendSearch(_ context.Context, ev domana.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
	return nil
}

// AppendClick records one click event.
func (l *EventLog) AppendClick(_ context.Context, ev domana.ClickEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.clicks = append(l.clicks, ev)
	return nil
}

// SearchEvents returns search events with since <= ts < until, oldest
// first, capped at limit (0 = no cap).
func (l *EventLog) SearchEvents(_ context.Context, since, until time.Time, limit int) ([]domana.Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domana.Event, 0, len(l.events))
	for _, ev := range l.events {
		if ev.Timestamp.Before(since) || !ev.Timestamp.Before(until) {
			continue
		}
		out = append(out, ev)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ClickEvents returns click events in the window, oldest first.
func (l *EventLog) ClickEvents(_ context.Context, since, until time.Time, limit int) ([]domana.ClickEvent, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domana.ClickEvent, 0, len(l.clicks))
	for _, ev := range l.clicks {
		if ev.Timestamp.Before(since) || !ev.Timestamp.Before(until) {
			continue
		}
		out = append(out, ev)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CountSearchEvents returns the total number of recorded search events.
func (l *EventLog) CountSearchEvents(_ context.Context) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events), nil
}

// SavedSearchStore is an in-memory saved search store port implementation.
type SavedSearchStore struct {
	mu    sync.RWMutex
	saved map[string]domsaved.SavedSearch
}

// NewSavedSearchStore creates an empty in-memory saved search store.
func NewSavedSearchStore() *SavedSearchStore {
	return &SavedSearchStore{saved: make(map[string]domsaved.SavedSearch)}
}

// Upsert stores a saved search by ID.
func (s *SavedSearchStore) Upsert(_ context.Context, ss *domsaved.SavedSearch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[ss.ID()] = *ss
	return nil
}

// Get returns a saved search by ID.
func (s *SavedSearchStore) Get(_ context.Context, id string) (domsaved.SavedSearch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ss, ok := s.saved[id]
	if !ok {
		return domsaved.SavedSearch{}, domain.ErrSavedSearchNotFound
	}
	return ss, nil
}

// Delete removes a saved search by ID.
func (s *SavedSearchStore) Delete(_ context.Context, id, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, id)
	return nil
}

// ListByOwner returns all saved searches owned by ownerID.
func (s *SavedSearchStore) ListByOwner(_ context.Context, ownerID string) ([]domsaved.SavedSearch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domsaved.SavedSearch, 0)
	for _, ss := range s.saved {
		if ss.OwnerID() == ownerID {
			out = append(out, ss)
		}
	}
	sortSaved(out)
	return out, nil
}

// ListPublic returns all public saved searches.
func (s *SavedSearchStore) ListPublic(_ context.Context) ([]domsaved.SavedSearch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domsaved.SavedSearch, 0)
	for _, ss := range s.saved {
		if ss.IsPublic() {
			out = append(out, ss)
		}
	}
	sortSaved(out)
	return out, nil
}

func sortSaved(list []domsaved.SavedSearch) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID() < list[j].ID() })
}
