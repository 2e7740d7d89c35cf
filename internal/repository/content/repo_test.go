package content

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/db"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain"
)

// fakeStore serves canned record payloads by key.
type fakeStore struct {
	data map[string][]byte
	err  error
}

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	raw, ok := f.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return raw, nil
}

func (f *fakeStore) MGet(_ context.Context, keys []string) ([][]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = f.data[k]
	}
	return out, nil
}

func (f *fakeStore) Exists(_ context.Context, key string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.data[key]
	return ok, nil
}

func (f *fakeStore) Scan(_ context.Context, _ string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	return keys, nil
}

func seedRecord(t *testing.T, store *fakeStore, id, status string, updatedAt time.Time) {
	t.Helper()
	raw, err := json.Marshal(recordDTO{
		ID:        id,
		Status:    status,
		UpdatedAt: updatedAt,
		Outline:   &outlineDTO{Title: "Algebra " + id},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store.data[contentKey(id)] = raw
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func TestGet_MissingRecordMapsToNotFound(t *testing.T) {
	repo := New(newFakeStore())

	_, err := repo.Get(context.Background(), "absent")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected domain.ErrNotFound, got %v", err)
	}
}

func TestGet_StoreFailurePreserved(t *testing.T) {
	repo := New(&fakeStore{err: errors.New("connection reset")})

	_, err := repo.Get(context.Background(), "c1")
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestGet_ParsesRecord(t *testing.T) {
	store := newFakeStore()
	seedRecord(t, store, "c1", StatusCompleted, time.Now().UTC())
	repo := New(store)

	rec, err := repo.Get(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != "c1" || rec.Outline == nil || rec.Outline.Title != "Algebra c1" {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestListCompleted_FiltersStatusAndSince(t *testing.T) {
	now := time.Now().UTC()
	store := newFakeStore()
	seedRecord(t, store, "old", StatusCompleted, now.Add(-48*time.Hour))
	seedRecord(t, store, "new", StatusCompleted, now)
	seedRecord(t, store, "wip", "in_progress", now)
	repo := New(store)

	recs, err := repo.ListCompleted(context.Background(), now.Add(-time.Hour), 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "new" {
		t.Errorf("expected only the recent completed record, got %+v", recs)
	}
}

func TestListCompleted_Paging(t *testing.T) {
	now := time.Now().UTC()
	store := newFakeStore()
	for _, id := range []string{"a", "b", "c"} {
		seedRecord(t, store, id, StatusCompleted, now)
	}
	repo := New(store)

	page, err := repo.ListCompleted(context.Background(), time.Time{}, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 1 || page[0].ID != "b" {
		t.Errorf("expected second record by ID order, got %+v", page)
	}

	past, err := repo.ListCompleted(context.Background(), time.Time{}, 5, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(past) != 0 {
		t.Errorf("expected empty page past the end, got %+v", past)
	}
}

func TestExists(t *testing.T) {
	store := newFakeStore()
	seedRecord(t, store, "c1", StatusCompleted, time.Now().UTC())
	repo := New(store)

	ok, err := repo.Exists(context.Background(), "c1")
	if err != nil || !ok {
		t.Errorf("expected existing record, got ok=%v err=%v", ok, err)
	}
	ok, err = repo.Exists(context.Background(), "gone")
	if err != nil || ok {
		t.Errorf("expected missing record, got ok=%v err=%v", ok, err)
	}
}
