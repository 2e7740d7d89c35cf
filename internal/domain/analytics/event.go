// Package analytics models search analytics events and derived reports.
package analytics

import "time"

// Event is one recorded search. Events are append-only and never
// mutated after creation.
type Event struct {
	ID               string         `json:"id"`
	Query            string         `json:"query"`
	UserID           string         `json:"user_id,omitempty"`
	Timestamp        time.Time      `json:"timestamp"`
	ResultCount      int            `json:"result_count"`
	ClickedResultIDs []string       `json:"clicked_result_ids,omitempty"`
	SearchDurationMs float64        `json:"search_duration_ms"`
	FiltersUsed      map[string]any `json:"filters_used,omitempty"`
	FacetsUsed       []string       `json:"facets_used,omitempty"`
}

// ClickEvent is one recorded result click.
type ClickEvent struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	ResultID  string    `json:"result_id"`
	Position  int       `json:"position"`
	UserID    string    `json:"user_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Succeeded reports whether the search returned any results.
func (e *Event) Succeeded() bool { return e.ResultCount > 0 }

// Clicked reports whether the search led to at least one click.
func (e *Event) Clicked() bool { return len(e.ClickedResultIDs) > 0 }
