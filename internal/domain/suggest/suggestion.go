// Package suggest models autocomplete suggestions.
package suggest

import (
	"sort"
	"strings"
)

// Type identifies the source that produced a suggestion.
type Type string

// Suggestion source types.
const (
	TypeQuery      Type = "query"
	TypeContent    Type = "content"
	TypeTag        Type = "tag"
	TypeCorrection Type = "correction"
)

// Suggestion is one ranked autocomplete candidate.
type Suggestion struct {
	Text     string         `json:"text"`
	Score    float64        `json:"score"`
	Type     Type           `json:"type"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Merge deduplicates suggestions by case-insensitive text (keeping the
// highest score on collision), sorts by score descending, and truncates
// to limit.
func Merge(candidates []Suggestion, limit int) []Suggestion {
	best := make(map[string]Suggestion, len(candidates))
	order := make([]string, 0, len(candidates))
	for _, c := range candidates {
		key := strings.ToLower(c.Text)
		prev, seen := best[key]
		if !seen {
			order = append(order, key)
			best[key] = c
			continue
		}
		if c.Score > prev.Score {
			best[key] = c
		}
	}

	merged := make([]Suggestion, 0, len(order))
	for _, key := range order {
		merged = append(merged, best[key])
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})
	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
