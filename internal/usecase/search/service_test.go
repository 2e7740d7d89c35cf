package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/analytics"
	domdoc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document/patch"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/search/query"
	domsuggest "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/suggest"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/repository/memory"
)

// failingStore errors on every call.
type failingStore struct{}

func (failingStore) Upsert(context.Context, *domdoc.Document) (bool, error) {
	return false, errors.New("store down")
}
func (failingStore) Get(context.Context, string) (domdoc.Document, error) {
	return domdoc.Document{}, errors.New("store down")
}
func (failingStore) Delete(context.Context, string) error { return errors.New("store down") }
func (failingStore) Find(context.Context, []query.FilterClause) ([]domdoc.Document, error) {
	return nil, errors.New("store down")
}
func (failingStore) Count(context.Context) (int, error) { return 0, errors.New("store down") }

// mockAnalyzer records tracked events.
type mockAnalyzer struct {
	events  []analytics.Event
	popular []analytics.PopularQuery
}

func (m *mockAnalyzer) TrackSearch(_ context.Context, ev analytics.Event) bool {
	m.events = append(m.events, ev)
	return true
}

func (m *mockAnalyzer) PopularSearches(context.Context, int, int) []analytics.PopularQuery {
	return m.popular
}

// mockSuggester returns canned suggestions.
type mockSuggester struct {
	suggestions []domsuggest.Suggestion
}

func (m *mockSuggester) GetSuggestions(context.Context, string, string, int, []domsuggest.Type) []domsuggest.Suggestion {
	return m.suggestions
}

func newDoc(t *testing.T, attrs domdoc.Attributes) domdoc.Document {
	t.Helper()
	doc, err := domdoc.New(attrs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return doc
}

func indexed(t *testing.T, docs ...domdoc.Document) *Service {
	t.Helper()
	store := memory.NewDocumentStore()
	svc := New(store, nil, nil, nil, nil)
	for i := range docs {
		if !svc.IndexDocument(context.Background(), &docs[i]) {
			t.Fatalf("failed to index %s", docs[i].ID())
		}
	}
	return svc
}

func TestSearch_TitleMatchBeatsOverviewMatch(t *testing.T) {
	svc := indexed(t,
		newDoc(t, domdoc.Attributes{ID: "a", Title: "Python Basics", Overview: "intro"}),
		newDoc(t, domdoc.Attributes{ID: "b", Title: "Advanced Topics", Overview: "Python deep dive"}),
	)

	res := svc.Search(context.Background(), query.NewBuilder().Text("python").Paginate(1, 10).Build(), "")

	if res.Total() != 2 {
		t.Fatalf("expected total 2, got %d", res.Total())
	}
	hits := res.Hits()
	if hits[0].ID() != "a" {
		t.Errorf("expected title match ranked first, got %s", hits[0].ID())
	}
	if hits[0].Score() <= hits[1].Score() {
		t.Errorf("expected a.score > b.score, got %v <= %v", hits[0].Score(), hits[1].Score())
	}
}

func TestSearch_EmptyIndex(t *testing.T) {
	svc := indexed(t)

	res := svc.Search(context.Background(), query.NewBuilder().Text("anything").Build(), "")

	if res.Total() != 0 {
		t.Errorf("expected total 0, got %d", res.Total())
	}
	if len(res.Hits()) != 0 {
		t.Errorf("expected no hits, got %d", len(res.Hits()))
	}
	if res.TotalPages() != 0 {
		t.Errorf("expected 0 pages, got %d", res.TotalPages())
	}
}

func TestSearch_PaginationInvariant(t *testing.T) {
	docs := make([]domdoc.Document, 7)
	for i := range docs {
		docs[i] = newDoc(t, domdoc.Attributes{
			ID:    "doc-" + string(rune('a'+i)),
			Title: "Chemistry Notes",
		})
	}
	svc := indexed(t, docs...)

	for page := 1; page <= 4; page++ {
		res := svc.Search(context.Background(), query.NewBuilder().Text("chemistry").Paginate(page, 3).Build(), "")
		if res.Total() != 7 {
			t.Fatalf("page %d: expected total 7, got %d", page, res.Total())
		}
		if len(res.Hits()) > 3 {
			t.Errorf("page %d: expected at most 3 hits, got %d", page, len(res.Hits()))
		}
		if res.TotalPages() != 3 {
			t.Errorf("page %d: expected 3 pages, got %d", page, res.TotalPages())
		}
	}

	// Page past the end is empty, not an error.
	res := svc.Search(context.Background(), query.NewBuilder().Text("chemistry").Paginate(4, 3).Build(), "")
	if len(res.Hits()) != 0 {
		t.Errorf("expected empty page past the end, got %d hits", len(res.Hits()))
	}
}

func TestSearch_StoreFailureDegradesToEmpty(t *testing.T) {
	svc := New(failingStore{}, nil, nil, nil, nil)

	res := svc.Search(context.Background(), query.NewBuilder().Text("python").Paginate(2, 5).Build(), "")

	if res.Total() != 0 || len(res.Hits()) != 0 {
		t.Errorf("expected empty degraded result, got total=%d hits=%d", res.Total(), len(res.Hits()))
	}
	if res.Page() != 2 || res.PageSize() != 5 {
		t.Errorf("expected requested page window preserved, got page=%d size=%d", res.Page(), res.PageSize())
	}
}

func TestSearch_NonMatchingDocsExcluded(t *testing.T) {
	svc := indexed(t,
		newDoc(t, domdoc.Attributes{ID: "a", Title: "Python Basics"}),
		newDoc(t, domdoc.Attributes{ID: "b", Title: "French History"}),
	)

	res := svc.Search(context.Background(), query.NewBuilder().Text("python").Build(), "")
	if res.Total() != 1 {
		t.Fatalf("expected 1 hit, got %d", res.Total())
	}
	if res.Hits()[0].ID() != "a" {
		t.Errorf("expected doc a, got %s", res.Hits()[0].ID())
	}
}

func TestSearch_OwnerFilterRestrictsResults(t *testing.T) {
	svc := indexed(t,
		newDoc(t, domdoc.Attributes{ID: "a", OwnerID: "user-1", Title: "Python Basics"}),
		newDoc(t, domdoc.Attributes{ID: "b", OwnerID: "user-2", Title: "Python Advanced"}),
	)

	res := svc.Search(context.Background(), query.NewBuilder().Text("python").Build(), "user-1")
	if res.Total() != 1 || res.Hits()[0].ID() != "a" {
		t.Errorf("expected only user-1's document, got total=%d", res.Total())
	}
}

func TestSearch_EmptyTextSortsWithoutScoring(t *testing.T) {
	svc := indexed(t,
		newDoc(t, domdoc.Attributes{ID: "a", Title: "Zebra"}),
		newDoc(t, domdoc.Attributes{ID: "b", Title: "Aardvark"}),
	)

	res := svc.Search(context.Background(),
		query.NewBuilder().SortBy("title", query.Asc).Build(), "")

	if res.Total() != 2 {
		t.Fatalf("expected total 2, got %d", res.Total())
	}
	if res.Hits()[0].ID() != "b" {
		t.Errorf("expected title-ascending order, got %s first", res.Hits()[0].ID())
	}
	if res.Hits()[0].Score() != 1.0 {
		t.Errorf("expected neutral score 1.0, got %v", res.Hits()[0].Score())
	}
}

func TestSearch_HighlightsWrapMatches(t *testing.T) {
	svc := indexed(t,
		newDoc(t, domdoc.Attributes{ID: "a", Title: "Python Basics", Overview: "A gentle python introduction"}),
	)

	res := svc.Search(context.Background(),
		query.NewBuilder().Text("python").Highlight("title", "overview").Build(), "")

	hl := res.Hits()[0].Highlights()
	if len(hl["title"]) == 0 {
		t.Fatal("expected title highlight")
	}
	if !strings.Contains(hl["title"][0], "<em>") {
		t.Errorf("expected <em> marker, got %q", hl["title"][0])
	}
}

func TestSearch_HighlightsMultibyteContent(t *testing.T) {
	// Runes whose lowercase form is byte-longer than the original
	// (U+023A folds to the three-byte U+2C65) must not break fragment
	// slicing.
	title := strings.Repeat("Ⱥ", 30) + " Kernel"
	svc := indexed(t, newDoc(t, domdoc.Attributes{ID: "a", Title: title}))

	res := svc.Search(context.Background(),
		query.NewBuilder().Text("kernel").Highlight("title").Build(), "")

	if res.Total() != 1 {
		t.Fatalf("expected 1 hit, got %d", res.Total())
	}
	hl := res.Hits()[0].Highlights()
	if len(hl["title"]) == 0 {
		t.Fatal("expected title highlight")
	}
	if !strings.Contains(hl["title"][0], "<em>Kernel</em>") {
		t.Errorf("expected original casing wrapped, got %q", hl["title"][0])
	}
}

func TestSearch_FacetsComputedOverFilterSet(t *testing.T) {
	svc := indexed(t,
		newDoc(t, domdoc.Attributes{ID: "a", Title: "Python Basics", ContentType: "study_guide"}),
		newDoc(t, domdoc.Attributes{ID: "b", Title: "French History", ContentType: "faq"}),
	)

	// "python" matches only doc a, but the facet covers both eligible docs.
	res := svc.Search(context.Background(),
		query.NewBuilder().Text("python").Facet("content_type").Build(), "")

	facetRes, ok := res.Facets()["content_type"]
	if !ok {
		t.Fatal("expected content_type facet")
	}
	if facetRes.TotalCount != 2 {
		t.Errorf("expected facet over full candidate set (2), got %d", facetRes.TotalCount)
	}
}

func TestSearch_SuggestionsOnZeroResults(t *testing.T) {
	store := memory.NewDocumentStore()
	suggester := &mockSuggester{suggestions: []domsuggest.Suggestion{
		{Text: "python", Score: 1.0, Type: domsuggest.TypeQuery},
	}}
	svc := New(store, nil, suggester, nil, nil)

	res := svc.Search(context.Background(), query.NewBuilder().Text("pythn").Build(), "")
	if len(res.Suggestions()) != 1 || res.Suggestions()[0] != "python" {
		t.Errorf("expected did-you-mean suggestion, got %v", res.Suggestions())
	}
}

func TestSearch_TracksEvent(t *testing.T) {
	store := memory.NewDocumentStore()
	analyzer := &mockAnalyzer{}
	svc := New(store, analyzer, nil, nil, nil)

	// The owner filter scopes results, so the document must belong to
	// the searching user for the event to record a hit.
	doc := newDoc(t, domdoc.Attributes{ID: "a", OwnerID: "user-1", Title: "Python Basics"})
	svc.IndexDocument(context.Background(), &doc)

	svc.Search(context.Background(),
		query.NewBuilder().Text("python").FilterTerm("status", "published").Facet("content_type").Build(), "user-1")

	if len(analyzer.events) != 1 {
		t.Fatalf("expected 1 tracked event, got %d", len(analyzer.events))
	}
	ev := analyzer.events[0]
	if ev.Query != "python" || ev.ResultCount != 1 || ev.UserID != "user-1" {
		t.Errorf("unexpected event: %+v", ev)
	}
	if _, ok := ev.FiltersUsed["status"]; !ok {
		t.Error("expected filters recorded")
	}
	if len(ev.FacetsUsed) != 1 {
		t.Error("expected facets recorded")
	}
}

func TestIndexDocument_IdempotentUpsert(t *testing.T) {
	store := memory.NewDocumentStore()
	svc := New(store, nil, nil, nil, nil)
	doc := newDoc(t, domdoc.Attributes{ID: "a", Title: "Python Basics"})

	svc.IndexDocument(context.Background(), &doc)
	svc.IndexDocument(context.Background(), &doc)

	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 document after repeated upsert, got %d", count)
	}

	stored, err := store.Get(context.Background(), "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.SearchableText() != doc.SearchableText() {
		t.Error("expected stored state unchanged by repeated upsert")
	}
}

func TestBulkIndexDocuments_PartialFailureReport(t *testing.T) {
	svc := New(failingStore{}, nil, nil, nil, nil)
	docs := []domdoc.Document{
		newDoc(t, domdoc.Attributes{ID: "a", Title: "t"}),
		newDoc(t, domdoc.Attributes{ID: "b", Title: "t"}),
	}

	rep := svc.BulkIndexDocuments(context.Background(), docs)
	if rep.Total != 2 || rep.Failed != 2 || rep.Success != 0 {
		t.Errorf("unexpected report: %+v", rep)
	}
	if len(rep.Errors) != 2 {
		t.Errorf("expected itemized errors, got %d", len(rep.Errors))
	}
}

func TestUpdateDocument(t *testing.T) {
	store := memory.NewDocumentStore()
	svc := New(store, nil, nil, nil, nil)
	doc := newDoc(t, domdoc.Attributes{ID: "a", Title: "Python Basics"})
	svc.IndexDocument(context.Background(), &doc)

	if !svc.UpdateDocument(context.Background(), "a", patch.New().Title("Python Advanced")) {
		t.Fatal("expected update to succeed")
	}
	updated, _ := store.Get(context.Background(), "a")
	if updated.Title() != "Python Advanced" {
		t.Errorf("expected title updated, got %q", updated.Title())
	}
	if !strings.Contains(updated.SearchableText(), "advanced") {
		t.Error("expected searchable text recomputed")
	}

	if svc.UpdateDocument(context.Background(), "missing", patch.New().Title("x")) {
		t.Error("expected update of missing document to return false")
	}
}

func TestDeleteDocument(t *testing.T) {
	store := memory.NewDocumentStore()
	svc := New(store, nil, nil, nil, nil)
	doc := newDoc(t, domdoc.Attributes{ID: "a", Title: "t"})
	svc.IndexDocument(context.Background(), &doc)

	if !svc.DeleteDocument(context.Background(), "a") {
		t.Error("expected delete to succeed")
	}
	if svc.DeleteDocument(context.Background(), "a") {
		t.Error("expected second delete to return false")
	}
}

func TestGetIndexStats(t *testing.T) {
	svc := indexed(t,
		newDoc(t, domdoc.Attributes{ID: "a", Title: "t", ContentType: "study_guide,faq"}),
		newDoc(t, domdoc.Attributes{ID: "b", Title: "t", Status: "draft"}),
	)

	stats := svc.GetIndexStats(context.Background())
	if stats.TotalDocuments != 2 {
		t.Errorf("expected 2 documents, got %d", stats.TotalDocuments)
	}
	if stats.ByStatus["published"] != 1 || stats.ByStatus["draft"] != 1 {
		t.Errorf("unexpected status counts: %v", stats.ByStatus)
	}
	if stats.ByContentType["study_guide"] != 1 || stats.ByContentType["faq"] != 1 {
		t.Errorf("unexpected content type counts: %v", stats.ByContentType)
	}
	if stats.LastIndexedAt.IsZero() {
		t.Error("expected last indexed time set")
	}
}

func TestRefreshIndex(t *testing.T) {
	svc := indexed(t)
	if !svc.RefreshIndex(context.Background()) {
		t.Error("expected refresh to succeed")
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if svc.RefreshIndex(cancelled) {
		t.Error("expected refresh to fail on cancelled context")
	}
}
