package query

// Builder is a fluent, order-independent accumulator for search queries.
// Each call appends a clause; Build produces an immutable SearchQuery.
type Builder struct {
	q SearchQuery
}

// NewBuilder creates an empty query builder.
func NewBuilder() *Builder {
	return &Builder{q: SearchQuery{size: DefaultSize}}
}

// Text sets the free-text query string.
func (b *Builder) Text(text string) *Builder {
	b.q.text = text
	return b
}

// Match adds a must full-text clause against one field.
func (b *Builder) Match(field, value string, boost float64) *Builder {
	if boost <= 0 {
		boost = 1.0
	}
	b.q.must = append(b.q.must, TextClause{Field: field, Value: value, Boost: boost})
	return b
}

// MatchAll adds one should clause per field for the same query text.
// With more than one field this is a "match any" across fields, so
// minimum_should_match is set to 1.
func (b *Builder) MatchAll(text string, fields []string, boost float64) *Builder {
	if boost <= 0 {
		boost = 1.0
	}
	for _, f := range fields {
		b.q.should = append(b.q.should, TextClause{Field: f, Value: text, Boost: boost})
	}
	if len(fields) > 1 {
		b.q.minimumShouldMatch = 1
	}
	b.q.text = text
	return b
}

// Exclude adds a must-not full-text clause.
func (b *Builder) Exclude(field, value string) *Builder {
	b.q.mustNot = append(b.q.mustNot, TextClause{Field: field, Value: value, Boost: 1.0})
	return b
}

// FilterTerm adds an exact-match filter clause (non-scoring).
func (b *Builder) FilterTerm(field string, value any) *Builder {
	b.q.filters = append(b.q.filters, FilterClause{Field: field, Operator: OpEq, Value: value})
	return b
}

// FilterTerms adds a membership filter clause (non-scoring).
func (b *Builder) FilterTerms(field string, values []string) *Builder {
	b.q.filters = append(b.q.filters, FilterClause{Field: field, Operator: OpIn, Value: values})
	return b
}

// FilterRange adds gte/lte filter clauses for the given bounds.
// Nil bounds are skipped.
func (b *Builder) FilterRange(field string, gte, lte any) *Builder {
	if gte != nil {
		b.q.filters = append(b.q.filters, FilterClause{Field: field, Operator: OpGte, Value: gte})
	}
	if lte != nil {
		b.q.filters = append(b.q.filters, FilterClause{Field: field, Operator: OpLte, Value: lte})
	}
	return b
}

// Filter adds an arbitrary filter clause.
func (b *Builder) Filter(field string, op Operator, value any) *Builder {
	b.q.filters = append(b.q.filters, FilterClause{Field: field, Operator: op, Value: value})
	return b
}

// SortBy appends a sort key. Earlier keys take priority.
func (b *Builder) SortBy(field string, dir Direction) *Builder {
	if dir != Asc && dir != Desc {
		dir = Desc
	}
	b.q.sort = append(b.q.sort, SortClause{Field: field, Direction: dir})
	return b
}

// Facet requests facet aggregation for a field.
func (b *Builder) Facet(fields ...string) *Builder {
	b.q.facets = append(b.q.facets, fields...)
	return b
}

// Highlight requests highlighting for a field.
func (b *Builder) Highlight(fields ...string) *Builder {
	b.q.highlightFields = append(b.q.highlightFields, fields...)
	return b
}

// Paginate sets the page window from a 1-based page number.
func (b *Builder) Paginate(page, size int) *Builder {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultSize
	}
	b.q.offset = (page - 1) * size
	b.q.size = size
	return b
}

// Explain requests score explanations.
func (b *Builder) Explain() *Builder {
	b.q.explain = true
	return b
}

// FromFilters expands a structured filter object into the equivalent
// filter clauses. Every populated field maps to exactly one clause group;
// the builder itself is not otherwise modified.
func (b *Builder) FromFilters(f AdvancedFilters) *Builder {
	if len(f.ContentTypes) > 0 {
		b.FilterTerms("content_type", f.ContentTypes)
	}
	if len(f.Difficulties) > 0 {
		b.FilterTerms("difficulty", f.Difficulties)
	}
	if len(f.Audiences) > 0 {
		b.FilterTerms("target_audience", f.Audiences)
	}
	if len(f.Tags) > 0 {
		b.FilterTerms("tags", f.Tags)
	}
	if len(f.Categories) > 0 {
		b.FilterTerms("categories", f.Categories)
	}
	if f.Status != "" {
		b.FilterTerm("status", f.Status)
	}
	if f.OwnerID != "" {
		b.FilterTerm("owner_id", f.OwnerID)
	}
	if f.MinQualityScore != nil || f.MaxQualityScore != nil {
		var gte, lte any
		if f.MinQualityScore != nil {
			gte = *f.MinQualityScore
		}
		if f.MaxQualityScore != nil {
			lte = *f.MaxQualityScore
		}
		b.FilterRange("quality_score", gte, lte)
	}
	if f.MinDuration != nil || f.MaxDuration != nil {
		var gte, lte any
		if f.MinDuration != nil {
			gte = *f.MinDuration
		}
		if f.MaxDuration != nil {
			lte = *f.MaxDuration
		}
		b.FilterRange("estimated_duration", gte, lte)
	}
	if f.CreatedAfter != nil || f.CreatedBefore != nil {
		var gte, lte any
		if f.CreatedAfter != nil {
			gte = *f.CreatedAfter
		}
		if f.CreatedBefore != nil {
			lte = *f.CreatedBefore
		}
		b.FilterRange("created_at", gte, lte)
	}
	return b
}

// Build returns the accumulated immutable query.
func (b *Builder) Build() SearchQuery {
	q := b.q
	if q.offset < 0 {
		q.offset = 0
	}
	if q.size < 1 {
		q.size = DefaultSize
	}
	return q
}
