package contentsearch

import (
	"time"

	domana "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/analytics"
	domdoc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document"
	domsaved "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/savedsearch"
	domfacet "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/search/facet"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/search/query"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/search/result"
	domsuggest "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/suggest"
)

// Section is one outline section of a document.
type Section struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	KeyPoints   []string `json:"key_points,omitempty"`
}

// Document is an indexable content document. Status defaults to
// published; SearchableText is derived internally and never supplied.
type Document struct {
	ID                string         `json:"id"`
	OwnerID           string         `json:"owner_id,omitempty"`
	Title             string         `json:"title"`
	Overview          string         `json:"overview,omitempty"`
	ContentType       string         `json:"content_type,omitempty"`
	Difficulty        string         `json:"difficulty,omitempty"`
	TargetAudience    string         `json:"target_audience,omitempty"`
	Tags              []string       `json:"tags,omitempty"`
	Categories        []string       `json:"categories,omitempty"`
	CreatedAt         time.Time      `json:"created_at,omitzero"`
	UpdatedAt         time.Time      `json:"updated_at,omitzero"`
	QualityScore      *float64       `json:"quality_score,omitempty"`
	EstimatedDuration *int           `json:"estimated_duration,omitempty"`
	Status            string         `json:"status,omitempty"`
	Sections          []Section      `json:"sections,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
}

// Filters narrows a search to documents matching every populated field.
type Filters struct {
	ContentTypes    []string
	Difficulties    []string
	Audiences       []string
	Tags            []string
	Categories      []string
	Status          string
	OwnerID         string
	MinQualityScore *float64
	MaxQualityScore *float64
	MinDuration     *int
	MaxDuration     *int
	CreatedAfter    *time.Time
	CreatedBefore   *time.Time
}

// FilterClause is one stored filter predicate of a saved search.
type FilterClause struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// Sort is one sort key. Earlier keys take priority.
type Sort struct {
	Field      string
	Descending bool
}

// Request describes one search.
type Request struct {
	Text            string
	Filters         Filters
	Sort            []Sort
	Facets          []string
	HighlightFields []string
	Page            int // 1-based, default 1
	PageSize        int // default 20
	OwnerFilter     string
}

// Hit is one scored search match.
type Hit struct {
	ID         string              `json:"id"`
	Score      float64             `json:"score"`
	Document   Document            `json:"document"`
	Highlights map[string][]string `json:"highlights,omitempty"`
}

// FacetValue is one distinct facet value with its document count.
type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
	Label string `json:"label,omitempty"`
}

// Facet is the aggregation outcome for one field.
type Facet struct {
	Field        string       `json:"field"`
	Values       []FacetValue `json:"values"`
	TotalCount   int          `json:"total_count"`
	MissingCount int          `json:"missing_count,omitempty"`
}

// Response is a paginated search outcome. Failed searches degrade to
// an empty response, never an error.
type Response struct {
	Query       string           `json:"query"`
	Total       int              `json:"total"`
	Hits        []Hit            `json:"hits"`
	Facets      map[string]Facet `json:"facets,omitempty"`
	Page        int              `json:"page"`
	PageSize    int              `json:"page_size"`
	TotalPages  int              `json:"total_pages"`
	TookMs      float64          `json:"took_ms"`
	Suggestions []string         `json:"suggestions,omitempty"`
}

// Suggestion is one ranked autocomplete candidate.
type Suggestion struct {
	Text     string         `json:"text"`
	Score    float64        `json:"score"`
	Type     string         `json:"type"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// PopularQuery is one entry of the popularity report.
type PopularQuery struct {
	Query            string  `json:"query"`
	SearchCount      int     `json:"search_count"`
	UniqueUsers      int     `json:"unique_users"`
	AvgResults       float64 `json:"avg_results"`
	AvgDurationMs    float64 `json:"avg_duration_ms"`
	ClickThroughRate float64 `json:"click_through_rate"`
}

// TrendingQuery is one entry of the trending report.
type TrendingQuery struct {
	Query         string  `json:"query"`
	CurrentCount  int     `json:"current_count"`
	PreviousCount int     `json:"previous_count"`
	TrendScore    float64 `json:"trend_score"`
	IsNew         bool    `json:"is_new"`
}

// FailedQuery is one entry of the zero-result report.
type FailedQuery struct {
	Query        string    `json:"query"`
	FailureCount int       `json:"failure_count"`
	LastSeen     time.Time `json:"last_seen"`
}

// Metrics is the aggregate search activity report over a window.
type Metrics struct {
	TotalSearches       int     `json:"total_searches"`
	UniqueUsers         int     `json:"unique_users"`
	AvgSearchesPerUser  float64 `json:"avg_searches_per_user"`
	AvgDurationMs       float64 `json:"avg_duration_ms"`
	AvgResultsPerSearch float64 `json:"avg_results_per_search"`
	SearchSuccessRate   float64 `json:"search_success_rate"`
	ClickThroughRate    float64 `json:"click_through_rate"`
}

// SavedSearch is a named query snapshot a user can re-run later.
type SavedSearch struct {
	ID          string         `json:"id"`
	OwnerID     string         `json:"owner_id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	QueryText   string         `json:"query_text,omitempty"`
	Filters     []FilterClause `json:"filters,omitempty"`
	IsPublic    bool           `json:"is_public"`
	Tags        []string       `json:"tags,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// IndexStats describes the current index contents.
type IndexStats struct {
	TotalDocuments int            `json:"total_documents"`
	ByStatus       map[string]int `json:"by_status,omitempty"`
	ByContentType  map[string]int `json:"by_content_type,omitempty"`
	LastIndexedAt  time.Time      `json:"last_indexed_at,omitzero"`
}

// ItemError pairs a document ID with its failure message.
type ItemError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// BulkReport summarizes a bulk index operation. There is no rollback:
// failed items are reported while the rest proceed.
type BulkReport struct {
	Total     int         `json:"total"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Errors    []ItemError `json:"errors,omitempty"`
}

func toInternalDocument(d Document) (domdoc.Document, error) {
	sections := make([]domdoc.Section, len(d.Sections))
	for i, s := range d.Sections {
		sections[i] = domdoc.NewSection(s.Title, s.Description, s.KeyPoints)
	}
	return domdoc.New(domdoc.Attributes{
		ID:                d.ID,
		OwnerID:           d.OwnerID,
		Title:             d.Title,
		Overview:          d.Overview,
		ContentType:       d.ContentType,
		Difficulty:        d.Difficulty,
		TargetAudience:    d.TargetAudience,
		Tags:              d.Tags,
		Categories:        d.Categories,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
		QualityScore:      d.QualityScore,
		EstimatedDuration: d.EstimatedDuration,
		Status:            d.Status,
		Sections:          sections,
		Metadata:          d.Metadata,
	})
}

func fromInternalDocument(doc *domdoc.Document) Document {
	internal := doc.Sections()
	sections := make([]Section, len(internal))
	for i, s := range internal {
		sections[i] = Section{Title: s.Title(), Description: s.Description(), KeyPoints: s.KeyPoints()}
	}
	return Document{
		ID:                doc.ID(),
		OwnerID:           doc.OwnerID(),
		Title:             doc.Title(),
		Overview:          doc.Overview(),
		ContentType:       doc.ContentType(),
		Difficulty:        doc.Difficulty(),
		TargetAudience:    doc.TargetAudience(),
		Tags:              doc.Tags(),
		Categories:        doc.Categories(),
		CreatedAt:         doc.CreatedAt(),
		UpdatedAt:         doc.UpdatedAt(),
		QualityScore:      doc.QualityScore(),
		EstimatedDuration: doc.EstimatedDuration(),
		Status:            doc.Status(),
		Sections:          sections,
		Metadata:          doc.Metadata(),
	}
}

func toAdvancedFilters(f Filters) query.AdvancedFilters {
	return query.AdvancedFilters{
		ContentTypes:    f.ContentTypes,
		Difficulties:    f.Difficulties,
		Audiences:       f.Audiences,
		Tags:            f.Tags,
		Categories:      f.Categories,
		Status:          f.Status,
		OwnerID:         f.OwnerID,
		MinQualityScore: f.MinQualityScore,
		MaxQualityScore: f.MaxQualityScore,
		MinDuration:     f.MinDuration,
		MaxDuration:     f.MaxDuration,
		CreatedAfter:    f.CreatedAfter,
		CreatedBefore:   f.CreatedBefore,
	}
}

func fromInternalResult(res result.Result) Response {
	hits := make([]Hit, len(res.Hits()))
	for i, h := range res.Hits() {
		src := h.Source()
		hits[i] = Hit{
			ID:         h.ID(),
			Score:      h.Score(),
			Document:   fromInternalDocument(&src),
			Highlights: h.Highlights(),
		}
	}

	var facets map[string]Facet
	if len(res.Facets()) > 0 {
		facets = make(map[string]Facet, len(res.Facets()))
		for field, fr := range res.Facets() {
			facets[field] = fromInternalFacet(fr)
		}
	}

	return Response{
		Query:       res.Query(),
		Total:       res.Total(),
		Hits:        hits,
		Facets:      facets,
		Page:        res.Page(),
		PageSize:    res.PageSize(),
		TotalPages:  res.TotalPages(),
		TookMs:      res.TookMs(),
		Suggestions: res.Suggestions(),
	}
}

func fromInternalFacet(fr domfacet.Result) Facet {
	values := make([]FacetValue, len(fr.Values))
	for i, v := range fr.Values {
		values[i] = FacetValue{Value: v.Value, Count: v.Count, Label: v.Label}
	}
	return Facet{
		Field:        fr.Field,
		Values:       values,
		TotalCount:   fr.TotalCount,
		MissingCount: fr.MissingCount,
	}
}

func fromInternalSuggestions(in []domsuggest.Suggestion) []Suggestion {
	out := make([]Suggestion, len(in))
	for i, s := range in {
		out[i] = Suggestion{Text: s.Text, Score: s.Score, Type: string(s.Type), Metadata: s.Metadata}
	}
	return out
}

func fromInternalPopular(in []domana.PopularQuery) []PopularQuery {
	out := make([]PopularQuery, len(in))
	for i, p := range in {
		out[i] = PopularQuery(p)
	}
	return out
}

func toInternalClauses(in []FilterClause) []query.FilterClause {
	if len(in) == 0 {
		return nil
	}
	out := make([]query.FilterClause, len(in))
	for i, c := range in {
		out[i] = query.FilterClause{Field: c.Field, Operator: query.Operator(c.Operator), Value: c.Value}
	}
	return out
}

func fromInternalClauses(in []query.FilterClause) []FilterClause {
	if len(in) == 0 {
		return nil
	}
	out := make([]FilterClause, len(in))
	for i, c := range in {
		out[i] = FilterClause{Field: c.Field, Operator: string(c.Operator), Value: c.Value}
	}
	return out
}

func fromInternalSaved(s *domsaved.SavedSearch) SavedSearch {
	return SavedSearch{
		ID:          s.ID(),
		OwnerID:     s.OwnerID(),
		Name:        s.Name(),
		Description: s.Description(),
		QueryText:   s.QueryText(),
		Filters:     fromInternalClauses(s.Filters()),
		IsPublic:    s.IsPublic(),
		Tags:        s.Tags(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}
}
