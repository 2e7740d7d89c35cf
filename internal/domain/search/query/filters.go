package query

import "time"

// AdvancedFilters is the external filter DTO accepted at the boundary.
// FromFilters on the Builder is the only mapping point between this
// shape and internal filter clauses.
type AdvancedFilters struct {
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

// IsZero reports whether no filter field is populated.
func (f AdvancedFilters) IsZero() bool {
	return len(f.ContentTypes) == 0 && len(f.Difficulties) == 0 &&
		len(f.Audiences) == 0 && len(f.Tags) == 0 && len(f.Categories) == 0 &&
		f.Status == "" && f.OwnerID == "" &&
		f.MinQualityScore == nil && f.MaxQualityScore == nil &&
		f.MinDuration == nil && f.MaxDuration == nil &&
		f.CreatedAfter == nil && f.CreatedBefore == nil
}
