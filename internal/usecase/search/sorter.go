package search

import (
	"sort"
	"strings"

	domdoc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/search/query"
)

// applySort orders docs by the requested sort keys. Clauses are applied
// in reverse so each stable sort layers under the previous one and the
// first clause wins.
func applySort(docs []domdoc.Document, clauses []query.SortClause) {
	for i := len(clauses) - 1; i >= 0; i-- {
		c := clauses[i]
		sort.SliceStable(docs, func(a, b int) bool {
			cmp := compareField(&docs[a], &docs[b], c.Field)
			if c.Direction == query.Desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}
}

// compareField compares two documents on one field. A missing numeric
// field compares greater than any present value.
func compareField(a, b *domdoc.Document, field string) int {
	switch field {
	case "title":
		return strings.Compare(strings.ToLower(a.Title()), strings.ToLower(b.Title()))
	case "created_at":
		return a.CreatedAt().Compare(b.CreatedAt())
	case "updated_at":
		return a.UpdatedAt().Compare(b.UpdatedAt())
	case "indexed_at":
		return a.IndexedAt().Compare(b.IndexedAt())
	case "quality_score":
		return compareNumericPtr(floatPtr(a.QualityScore()), floatPtr(b.QualityScore()))
	case "estimated_duration":
		return compareNumericPtr(intAsFloatPtr(a.EstimatedDuration()), intAsFloatPtr(b.EstimatedDuration()))
	case "difficulty":
		return strings.Compare(a.Difficulty(), b.Difficulty())
	case "status":
		return strings.Compare(a.Status(), b.Status())
	case "content_type":
		return strings.Compare(a.ContentType(), b.ContentType())
	case "owner_id":
		return strings.Compare(a.OwnerID(), b.OwnerID())
	default:
		return strings.Compare(a.ID(), b.ID())
	}
}

func compareNumericPtr(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}

func floatPtr(v *float64) *float64 { return v }

func intAsFloatPtr(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
