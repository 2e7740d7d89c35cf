package analytics

import "time"

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
// TrendScore is the relative change between the current and previous
// windows; IsNew marks queries absent from the previous window.
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

// Metrics is the aggregate search metrics report over a window.
type Metrics struct {
	TotalSearches       int     `json:"total_searches"`
	UniqueUsers         int     `json:"unique_users"`
	AvgSearchesPerUser  float64 `json:"avg_searches_per_user"`
	AvgDurationMs       float64 `json:"avg_duration_ms"`
	AvgResultsPerSearch float64 `json:"avg_results_per_search"`
	SearchSuccessRate   float64 `json:"search_success_rate"`
	ClickThroughRate    float64 `json:"click_through_rate"`
}
