// Package facet computes facet aggregations, date histograms, and
// numeric stats over in-memory document sets. All operations are pure
// and deterministic; no indexes are pre-built.
package facet

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document"
	domfacet "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/search/facet"
)

// Interval is a date histogram bucket size.
type Interval string

// Date histogram intervals.
const (
	Hour  Interval = "hour"
	Day   Interval = "day"
	Week  Interval = "week"
	Month Interval = "month"
	Year  Interval = "year"
)

// Compute aggregates the requested facet fields over docs.
// Set-valued fields (tags, categories, comma-joined content types) count
// each member independently. Documents lacking a field contribute to its
// missing count.
func Compute(
	docs []document.Document,
	fields []string,
	configs map[string]domfacet.Config,
) map[string]domfacet.Result {
	results := make(map[string]domfacet.Result, len(fields))
	for _, field := range fields {
		cfg := configs[field].Normalize()
		results[field] = computeField(docs, field, cfg)
	}
	return results
}

func computeField(docs []document.Document, field string, cfg domfacet.Config) domfacet.Result {
	counts := make(map[string]int)
	missing := 0
	for i := range docs {
		values := fieldValues(&docs[i], field)
		if len(values) == 0 {
			missing++
			continue
		}
		for _, v := range values {
			counts[v]++
		}
	}

	total := 0
	values := make([]domfacet.Value, 0, len(counts))
	for v, n := range counts {
		total += n
		if n < cfg.MinCount {
			continue
		}
		values = append(values, domfacet.Value{Value: v, Count: n, Label: Label(field, v)})
	}

	switch cfg.Order {
	case domfacet.ByValue:
		sort.Slice(values, func(i, j int) bool { return values[i].Value < values[j].Value })
	default:
		sort.Slice(values, func(i, j int) bool {
			if values[i].Count != values[j].Count {
				return values[i].Count > values[j].Count
			}
			return values[i].Value < values[j].Value
		})
	}
	if len(values) > cfg.Size {
		values = values[:cfg.Size]
	}

	res := domfacet.Result{Field: field, Values: values, TotalCount: total}
	if cfg.IncludeMissing {
		res.MissingCount = missing
	}
	return res
}

// DateHistogram buckets documents by the truncated timestamp of field.
// Week buckets align to the Monday of that week. Buckets are returned
// sorted by key.
func DateHistogram(docs []document.Document, field string, interval Interval) []domfacet.Bucket {
	counts := make(map[string]int)
	for i := range docs {
		ts, ok := fieldTime(&docs[i], field)
		if !ok {
			continue
		}
		counts[bucketKey(ts, interval)]++
	}

	buckets := make([]domfacet.Bucket, 0, len(counts))
	for key, n := range counts {
		buckets = append(buckets, domfacet.Bucket{Key: key, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Key < buckets[j].Key })
	return buckets
}

func bucketKey(ts time.Time, interval Interval) string {
	ts = ts.UTC()
	switch interval {
	case Hour:
		return ts.Format("2006-01-02 15:00")
	case Week:
		// Align to Monday.
		offset := (int(ts.Weekday()) + 6) % 7
		monday := ts.AddDate(0, 0, -offset)
		return monday.Format("2006-01-02")
	case Month:
		return ts.Format("2006-01")
	case Year:
		return ts.Format("2006")
	default:
		return ts.Format("2006-01-02")
	}
}

// NumericStats computes min/max/avg for a numeric field across docs.
// Documents lacking the field are skipped.
func NumericStats(docs []document.Document, field string) domfacet.Stats {
	stats := domfacet.Stats{Field: field}
	sum := 0.0
	for i := range docs {
		v, ok := fieldNumber(&docs[i], field)
		if !ok {
			continue
		}
		if stats.Count == 0 || v < stats.Min {
			stats.Min = v
		}
		if stats.Count == 0 || v > stats.Max {
			stats.Max = v
		}
		sum += v
		stats.Count++
	}
	if stats.Count > 0 {
		stats.Avg = sum / float64(stats.Count)
	}
	return stats
}

// fieldValues extracts the facetable string values of a field.
func fieldValues(doc *document.Document, field string) []string {
	switch field {
	case "content_type":
		return splitSet(doc.ContentType())
	case "difficulty":
		return nonEmpty(doc.Difficulty())
	case "target_audience":
		return nonEmpty(doc.TargetAudience())
	case "status":
		return nonEmpty(doc.Status())
	case "owner_id":
		return nonEmpty(doc.OwnerID())
	case "tags":
		return doc.Tags()
	case "categories":
		return doc.Categories()
	default:
		if v, ok := doc.Metadata()[field]; ok {
			return metadataValues(v)
		}
		return nil
	}
}

func fieldTime(doc *document.Document, field string) (time.Time, bool) {
	switch field {
	case "created_at":
		return doc.CreatedAt(), !doc.CreatedAt().IsZero()
	case "updated_at":
		return doc.UpdatedAt(), !doc.UpdatedAt().IsZero()
	case "indexed_at":
		return doc.IndexedAt(), !doc.IndexedAt().IsZero()
	default:
		return time.Time{}, false
	}
}

func fieldNumber(doc *document.Document, field string) (float64, bool) {
	switch field {
	case "quality_score":
		if qs := doc.QualityScore(); qs != nil {
			return *qs, true
		}
	case "estimated_duration":
		if ed := doc.EstimatedDuration(); ed != nil {
			return float64(*ed), true
		}
	default:
		switch v := doc.Metadata()[field].(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		}
	}
	return 0, false
}

func nonEmpty(v string) []string {
	if v == "" {
		return nil
	}
	return []string{v}
}

func splitSet(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func metadataValues(v any) []string {
	switch val := v.(type) {
	case string:
		return nonEmpty(val)
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case bool:
		return []string{strconv.FormatBool(val)}
	case float64:
		return []string{strconv.FormatFloat(val, 'f', -1, 64)}
	default:
		return nil
	}
}
