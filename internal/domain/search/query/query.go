// Package query models structured search queries and their construction.
package query

// Operator is a filter comparison operator.
type Operator string

// Filter operators understood by the document store port.
const (
	OpEq         Operator = "eq"
	OpNe         Operator = "ne"
	OpGt         Operator = "gt"
	OpGte        Operator = "gte"
	OpLt         Operator = "lt"
	OpLte        Operator = "lte"
	OpIn         Operator = "in"
	OpNotIn      Operator = "not_in"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "starts_with"
	OpEndsWith   Operator = "ends_with"
)

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// FilterClause is a single non-scoring filter predicate.
type FilterClause struct {
	Field    string
	Operator Operator
	Value    any
}

// SortClause is one sort key with its direction.
type SortClause struct {
	Field     string
	Direction Direction
}

// TextClause is a scoring full-text clause produced by the builder.
type TextClause struct {
	Field string
	Value string
	Boost float64
}

// Occurrence groups boolean clause membership.
type Occurrence string

// Boolean occurrence groups.
const (
	Must    Occurrence = "must"
	Should  Occurrence = "should"
	MustNot Occurrence = "must_not"
)

// DefaultSize is the default page size when none is requested.
const DefaultSize = 20

// SearchQuery is an immutable structured query.
type SearchQuery struct {
	text               string
	must               []TextClause
	should             []TextClause
	mustNot            []TextClause
	minimumShouldMatch int
	filters            []FilterClause
	sort               []SortClause
	facets             []string
	highlightFields    []string
	offset             int
	size               int
	explain            bool
}

// Text returns the free-text query string.
func (q *SearchQuery) Text() string { return q.text }

// MustClauses returns the scoring must clauses.
func (q *SearchQuery) MustClauses() []TextClause { return q.must }

// ShouldClauses returns the scoring should clauses.
func (q *SearchQuery) ShouldClauses() []TextClause { return q.should }

// MustNotClauses returns the excluding clauses.
func (q *SearchQuery) MustNotClauses() []TextClause { return q.mustNot }

// MinimumShouldMatch returns how many should clauses must match.
func (q *SearchQuery) MinimumShouldMatch() int { return q.minimumShouldMatch }

// Filters returns the non-scoring filter clauses in insertion order.
func (q *SearchQuery) Filters() []FilterClause { return q.filters }

// Sort returns the sort clauses in priority order.
func (q *SearchQuery) Sort() []SortClause { return q.sort }

// Facets returns the requested facet fields.
func (q *SearchQuery) Facets() []string { return q.facets }

// HighlightFields returns the fields to highlight.
func (q *SearchQuery) HighlightFields() []string { return q.highlightFields }

// Offset returns the zero-based result offset.
func (q *SearchQuery) Offset() int { return q.offset }

// Size returns the requested page size.
func (q *SearchQuery) Size() int { return q.size }

// Explain reports whether score explanations were requested.
func (q *SearchQuery) Explain() bool { return q.explain }
