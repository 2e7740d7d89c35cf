package savedsearch

import (
	"context"
	"errors"
	"testing"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain"
	domsaved "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/savedsearch"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/search/query"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/repository/memory"
)

func newTestService() (*Service, *memory.SavedSearchStore) {
	store := memory.NewSavedSearchStore()
	return New(store, nil), store
}

func mustCreate(t *testing.T, svc *Service, p Params) domsaved.SavedSearch {
	t.Helper()
	saved, err := svc.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return saved
}

func TestCreate(t *testing.T) {
	svc, _ := newTestService()

	saved := mustCreate(t, svc, Params{
		OwnerID:   "user-1",
		Name:      "my algebra search",
		QueryText: "algebra",
		Filters:   []query.FilterClause{{Field: "difficulty", Operator: query.OpEq, Value: "beginner"}},
		Tags:      []string{"math"},
	})
	if saved.ID() == "" {
		t.Error("expected generated ID")
	}
	if saved.CreatedAt().IsZero() || saved.UpdatedAt().IsZero() {
		t.Error("expected timestamps set")
	}

	got, err := svc.Get(context.Background(), saved.ID(), "user-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.QueryText() != "algebra" || len(got.Filters()) != 1 {
		t.Errorf("unexpected snapshot: %q %v", got.QueryText(), got.Filters())
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Create(context.Background(), Params{OwnerID: "user-1"}); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := svc.Create(context.Background(), Params{Name: "unowned"}); err == nil {
		t.Error("expected error for missing owner")
	}
}

func TestGet_Visibility(t *testing.T) {
	svc, _ := newTestService()
	private := mustCreate(t, svc, Params{OwnerID: "user-1", Name: "private"})
	public := mustCreate(t, svc, Params{OwnerID: "user-1", Name: "public", IsPublic: true})

	if _, err := svc.Get(context.Background(), private.ID(), "user-2"); !errors.Is(err, domain.ErrSavedSearchNotFound) {
		t.Errorf("expected private search hidden from strangers, got %v", err)
	}
	if _, err := svc.Get(context.Background(), public.ID(), "user-2"); err != nil {
		t.Errorf("expected public search readable, got %v", err)
	}
	if _, err := svc.Get(context.Background(), private.ID(), "user-1"); err != nil {
		t.Errorf("expected owner access, got %v", err)
	}
}

func TestUpdate_OwnerOnly(t *testing.T) {
	svc, store := newTestService()
	saved := mustCreate(t, svc, Params{OwnerID: "user-1", Name: "before"})

	if svc.Update(context.Background(), saved.ID(), "user-2", "hijacked", "", false, nil) {
		t.Error("expected non-owner update rejected")
	}
	if !svc.Update(context.Background(), saved.ID(), "user-1", "after", "renamed", true, []string{"t"}) {
		t.Fatal("expected owner update to succeed")
	}

	got, err := store.Get(context.Background(), saved.ID())
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name() != "after" || !got.IsPublic() {
		t.Errorf("update not persisted: %q public=%v", got.Name(), got.IsPublic())
	}
	if !got.UpdatedAt().After(saved.UpdatedAt()) && !got.UpdatedAt().Equal(saved.UpdatedAt()) {
		t.Error("expected updatedAt bumped")
	}
}

func TestUpdate_MissingAndNonOwnerIndistinct(t *testing.T) {
	svc, _ := newTestService()
	saved := mustCreate(t, svc, Params{OwnerID: "user-1", Name: "n"})

	missing := svc.Update(context.Background(), "no-such-id", "user-2", "x", "", false, nil)
	foreign := svc.Update(context.Background(), saved.ID(), "user-2", "x", "", false, nil)
	if missing != foreign {
		t.Errorf("expected identical outcomes, got missing=%v foreign=%v", missing, foreign)
	}
}

func TestUpdate_RejectsEmptyName(t *testing.T) {
	svc, _ := newTestService()
	saved := mustCreate(t, svc, Params{OwnerID: "user-1", Name: "keep"})

	if svc.Update(context.Background(), saved.ID(), "user-1", "", "", false, nil) {
		t.Error("expected empty name rejected")
	}
	got, _ := svc.Get(context.Background(), saved.ID(), "user-1")
	if got.Name() != "keep" {
		t.Errorf("expected name unchanged, got %q", got.Name())
	}
}

func TestDelete_OwnerOnly(t *testing.T) {
	svc, _ := newTestService()
	saved := mustCreate(t, svc, Params{OwnerID: "user-1", Name: "n"})

	if svc.Delete(context.Background(), saved.ID(), "user-2") {
		t.Error("expected non-owner delete rejected")
	}
	if _, err := svc.Get(context.Background(), saved.ID(), "user-1"); err != nil {
		t.Fatalf("search should survive foreign delete: %v", err)
	}

	if !svc.Delete(context.Background(), saved.ID(), "user-1") {
		t.Fatal("expected owner delete to succeed")
	}
	if svc.Delete(context.Background(), saved.ID(), "user-1") {
		t.Error("expected second delete to report false")
	}
}

func TestSave(t *testing.T) {
	svc, _ := newTestService()

	saved, err := domsaved.New("fixed-id", "user-1", "n", "", "q", nil, nil, false, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !svc.Save(context.Background(), &saved) {
		t.Fatal("expected save to succeed")
	}
	if svc.Save(context.Background(), nil) {
		t.Error("expected nil save rejected")
	}
	empty := domsaved.SavedSearch{}
	if svc.Save(context.Background(), &empty) {
		t.Error("expected empty-ID save rejected")
	}
}

func TestList_MergesOwnedAndPublic(t *testing.T) {
	svc, _ := newTestService()
	mine := mustCreate(t, svc, Params{OwnerID: "user-1", Name: "mine"})
	minePublic := mustCreate(t, svc, Params{OwnerID: "user-1", Name: "mine public", IsPublic: true})
	theirs := mustCreate(t, svc, Params{OwnerID: "user-2", Name: "theirs", IsPublic: true})
	mustCreate(t, svc, Params{OwnerID: "user-2", Name: "theirs private"})

	got := svc.List(context.Background(), "user-1", true)
	if len(got) != 3 {
		t.Fatalf("expected 3 searches, got %d", len(got))
	}
	ids := make(map[string]int)
	for i := range got {
		ids[got[i].ID()]++
	}
	for _, want := range []string{mine.ID(), minePublic.ID(), theirs.ID()} {
		if ids[want] != 1 {
			t.Errorf("expected exactly one entry for %s, got %d", want, ids[want])
		}
	}
}

func TestList_OwnedOnly(t *testing.T) {
	svc, _ := newTestService()
	mustCreate(t, svc, Params{OwnerID: "user-1", Name: "mine"})
	mustCreate(t, svc, Params{OwnerID: "user-2", Name: "theirs", IsPublic: true})

	got := svc.List(context.Background(), "user-1", false)
	if len(got) != 1 || got[0].OwnerID() != "user-1" {
		t.Errorf("expected only owned searches, got %d", len(got))
	}
}
