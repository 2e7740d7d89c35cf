package contentsearch

import (
	"context"
	"testing"
)

func newMemoryClient(t *testing.T) *Client {
	t.Helper()
	c, err := New(WithMemory())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func seedDocs(t *testing.T, c *Client) {
	t.Helper()
	docs := []Document{
		{
			ID: "doc-1", OwnerID: "user-1", Title: "Python Basics",
			Overview: "An introduction to Python programming",
			Difficulty: "beginner", ContentType: "study_guide",
			Tags: []string{"python", "programming"},
		},
		{
			ID: "doc-2", OwnerID: "user-2", Title: "Advanced Calculus",
			Overview: "Limits, derivatives, and integrals",
			Difficulty: "advanced", ContentType: "study_guide,flashcards",
			Tags: []string{"math"},
		},
	}
	report := c.Documents().Bulk(context.Background(), docs)
	if report.Failed != 0 {
		t.Fatalf("seed failed: %+v", report)
	}
}

func TestClient_RequiresAddress(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected error without address or memory mode")
	}
}

func TestClient_SearchRoundTrip(t *testing.T) {
	c := newMemoryClient(t)
	seedDocs(t, c)

	resp := c.Search().Query(context.Background(), Request{Text: "python"})
	if resp.Total != 1 {
		t.Fatalf("expected 1 hit, got %d", resp.Total)
	}
	if resp.Hits[0].ID != "doc-1" || resp.Hits[0].Document.Title != "Python Basics" {
		t.Errorf("unexpected hit: %+v", resp.Hits[0])
	}
	if resp.Page != 1 || resp.TotalPages != 1 {
		t.Errorf("unexpected pagination: page=%d pages=%d", resp.Page, resp.TotalPages)
	}
}

func TestClient_SearchWithFiltersAndFacets(t *testing.T) {
	c := newMemoryClient(t)
	seedDocs(t, c)

	resp := c.Search().Query(context.Background(), Request{
		Filters: Filters{Difficulties: []string{"advanced"}},
		Facets:  []string{"difficulty"},
	})
	if resp.Total != 1 || resp.Hits[0].ID != "doc-2" {
		t.Fatalf("expected only the advanced document, got %+v", resp.Hits)
	}
	facet, ok := resp.Facets["difficulty"]
	if !ok {
		t.Fatal("expected difficulty facet")
	}
	if facet.TotalCount != 1 || len(facet.Values) != 1 || facet.Values[0].Value != "advanced" {
		t.Errorf("unexpected facet: %+v", facet)
	}
}

func TestClient_SearchNeverErrors(t *testing.T) {
	c := newMemoryClient(t)

	resp := c.Search().Query(context.Background(), Request{Text: "anything", Page: 3, PageSize: 5})
	if resp.Total != 0 || len(resp.Hits) != 0 {
		t.Errorf("expected empty response, got %+v", resp)
	}
	if resp.Page != 3 || resp.PageSize != 5 {
		t.Errorf("expected requested pagination echoed, got page=%d size=%d", resp.Page, resp.PageSize)
	}
}

func TestClient_DocumentLifecycle(t *testing.T) {
	c := newMemoryClient(t)
	ctx := context.Background()

	if err := c.Documents().Upsert(ctx, Document{ID: "doc-1", Title: "Chemistry Notes"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := c.Documents().Upsert(ctx, Document{ID: "bad"}); err == nil {
		t.Error("expected validation error for missing title")
	}

	title := "Organic Chemistry Notes"
	if !c.Documents().Update(ctx, "doc-1", Patch{Title: &title}) {
		t.Fatal("expected update to succeed")
	}
	resp := c.Search().Query(ctx, Request{Text: "organic"})
	if resp.Total != 1 {
		t.Fatalf("expected updated title searchable, got %d hits", resp.Total)
	}

	stats := c.Documents().Stats(ctx)
	if stats.TotalDocuments != 1 {
		t.Errorf("expected 1 document, got %d", stats.TotalDocuments)
	}

	if !c.Documents().Delete(ctx, "doc-1") {
		t.Fatal("expected delete to succeed")
	}
	if c.Documents().Delete(ctx, "doc-1") {
		t.Error("expected second delete to report false")
	}
}

func TestClient_BulkReportsInvalidItems(t *testing.T) {
	c := newMemoryClient(t)

	report := c.Documents().Bulk(context.Background(), []Document{
		{ID: "ok", Title: "Valid"},
		{ID: "missing-title"},
	})
	if report.Total != 2 || report.Succeeded != 1 || report.Failed != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Errors) != 1 || report.Errors[0].ID != "missing-title" {
		t.Errorf("unexpected errors: %+v", report.Errors)
	}
}

func TestClient_AnalyticsRoundTrip(t *testing.T) {
	c := newMemoryClient(t)
	ctx := context.Background()
	seedDocs(t, c)

	// Searches are tracked by default.
	c.Search().Query(ctx, Request{Text: "python", OwnerFilter: "user-1"})
	c.Search().Query(ctx, Request{Text: "python"})

	popular := c.Analytics().Popular(ctx, 10, 7)
	if len(popular) != 1 || popular[0].Query != "python" || popular[0].SearchCount != 2 {
		t.Fatalf("unexpected popularity report: %+v", popular)
	}

	history := c.Analytics().History(ctx, "user-1", 10, 7)
	if len(history) != 1 || history[0].Query != "python" {
		t.Errorf("unexpected history: %+v", history)
	}
}

func TestClient_SuggestRoundTrip(t *testing.T) {
	c := newMemoryClient(t)
	ctx := context.Background()
	seedDocs(t, c)

	got := c.Search().Suggest(ctx, "pyth", 5)
	if len(got) == 0 {
		t.Fatal("expected suggestions from indexed content")
	}
	if got[0].Text != "Python Basics" {
		t.Errorf("expected title suggestion first, got %+v", got[0])
	}
}

func TestClient_SavedSearchRoundTrip(t *testing.T) {
	c := newMemoryClient(t)
	ctx := context.Background()

	saved, err := c.SavedSearches().Create(ctx, SavedSearchParams{
		OwnerID:   "user-1",
		Name:      "beginner python",
		QueryText: "python",
		Filters:   []FilterClause{{Field: "difficulty", Operator: "eq", Value: "beginner"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected generated ID")
	}

	got, err := c.SavedSearches().Get(ctx, saved.ID, "user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Filters) != 1 || got.Filters[0].Field != "difficulty" {
		t.Errorf("expected filters round-tripped, got %+v", got.Filters)
	}

	if c.SavedSearches().Delete(ctx, saved.ID, "user-2") {
		t.Error("expected non-owner delete rejected")
	}
	if !c.SavedSearches().Delete(ctx, saved.ID, "user-1") {
		t.Error("expected owner delete to succeed")
	}
}
