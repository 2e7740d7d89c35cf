package query

import (
	"strings"
	"time"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document"
)

// Matches reports whether doc satisfies every filter clause. Clauses on
// unknown fields never match. String comparisons are exact for
// eq/ne/in/not_in and case-insensitive for
// contains/starts_with/ends_with.
func Matches(doc *document.Document, clauses []FilterClause) bool {
	for _, c := range clauses {
		if !matchClause(doc, c) {
			return false
		}
	}
	return true
}

func matchClause(doc *document.Document, c FilterClause) bool {
	if ts, ok := timeField(doc, c.Field); ok {
		return matchTime(ts, c)
	}
	if n, ok := numericField(doc, c.Field); ok {
		return matchNumeric(n, c)
	}
	values := stringField(doc, c.Field)
	return matchStrings(values, c)
}

func stringField(doc *document.Document, field string) []string {
	switch field {
	case "id":
		return []string{doc.ID()}
	case "owner_id":
		return []string{doc.OwnerID()}
	case "title":
		return []string{doc.Title()}
	case "overview":
		return []string{doc.Overview()}
	case "content_type":
		return splitCommaSet(doc.ContentType())
	case "difficulty":
		return []string{doc.Difficulty()}
	case "target_audience":
		return []string{doc.TargetAudience()}
	case "status":
		return []string{doc.Status()}
	case "tags":
		return doc.Tags()
	case "categories":
		return doc.Categories()
	default:
		if v, ok := doc.Metadata()[field].(string); ok {
			return []string{v}
		}
		return nil
	}
}

func numericField(doc *document.Document, field string) (float64, bool) {
	switch field {
	case "quality_score":
		if qs := doc.QualityScore(); qs != nil {
			return *qs, true
		}
	case "estimated_duration":
		if ed := doc.EstimatedDuration(); ed != nil {
			return float64(*ed), true
		}
	}
	return 0, false
}

func timeField(doc *document.Document, field string) (time.Time, bool) {
	switch field {
	case "created_at":
		return doc.CreatedAt(), true
	case "updated_at":
		return doc.UpdatedAt(), true
	default:
		return time.Time{}, false
	}
}

func matchStrings(values []string, c FilterClause) bool {
	switch c.Operator {
	case OpEq:
		want, ok := asString(c.Value)
		return ok && containsString(values, want)
	case OpNe:
		want, ok := asString(c.Value)
		return ok && !containsString(values, want)
	case OpIn:
		want, ok := asStringSlice(c.Value)
		if !ok {
			return false
		}
		for _, w := range want {
			if containsString(values, w) {
				return true
			}
		}
		return false
	case OpNotIn:
		want, ok := asStringSlice(c.Value)
		if !ok {
			return false
		}
		for _, w := range want {
			if containsString(values, w) {
				return false
			}
		}
		return true
	case OpContains:
		return substringMatch(values, c.Value, strings.Contains)
	case OpStartsWith:
		return substringMatch(values, c.Value, strings.HasPrefix)
	case OpEndsWith:
		return substringMatch(values, c.Value, strings.HasSuffix)
	default:
		return false
	}
}

func substringMatch(values []string, raw any, pred func(s, sub string) bool) bool {
	want, ok := asString(raw)
	if !ok {
		return false
	}
	want = strings.ToLower(want)
	for _, v := range values {
		if pred(strings.ToLower(v), want) {
			return true
		}
	}
	return false
}

func matchNumeric(v float64, c FilterClause) bool {
	switch c.Operator {
	case OpIn:
		want, ok := asNumberSlice(c.Value)
		if !ok {
			return false
		}
		for _, w := range want {
			if v == w {
				return true
			}
		}
		return false
	case OpNotIn:
		want, ok := asNumberSlice(c.Value)
		if !ok {
			return false
		}
		for _, w := range want {
			if v == w {
				return false
			}
		}
		return true
	}

	want, ok := asNumber(c.Value)
	if !ok {
		return false
	}
	switch c.Operator {
	case OpEq:
		return v == want
	case OpNe:
		return v != want
	case OpGt:
		return v > want
	case OpGte:
		return v >= want
	case OpLt:
		return v < want
	case OpLte:
		return v <= want
	default:
		return false
	}
}

func matchTime(ts time.Time, c FilterClause) bool {
	want, ok := asTime(c.Value)
	if !ok {
		return false
	}
	switch c.Operator {
	case OpEq:
		return ts.Equal(want)
	case OpNe:
		return !ts.Equal(want)
	case OpGt:
		return ts.After(want)
	case OpGte:
		return !ts.Before(want)
	case OpLt:
		return ts.Before(want)
	case OpLte:
		return !ts.After(want)
	default:
		return false
	}
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func splitCommaSet(v string) []string {
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

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asStringSlice(v any) ([]string, bool) {
	switch val := v.(type) {
	case []string:
		return val, true
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	case string:
		return []string{val}, true
	default:
		return nil, false
	}
}

func asNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	default:
		return 0, false
	}
}

func asNumberSlice(v any) ([]float64, bool) {
	switch val := v.(type) {
	case []float64:
		return val, true
	case []int:
		out := make([]float64, len(val))
		for i, n := range val {
			out[i] = float64(n)
		}
		return out, true
	case []any:
		out := make([]float64, 0, len(val))
		for _, item := range val {
			n, ok := asNumber(item)
			if !ok {
				return nil, false
			}
			out = append(out, n)
		}
		return out, true
	default:
		return nil, false
	}
}

func asTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		ts, err := time.Parse(time.RFC3339, val)
		if err != nil {
			return time.Time{}, false
		}
		return ts, true
	default:
		return time.Time{}, false
	}
}
