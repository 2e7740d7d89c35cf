// Package facet models facet configuration and aggregation results.
package facet

// Order controls how facet values are ranked before truncation.
type Order string

// Facet value orderings.
const (
	ByCount Order = "count"
	ByValue Order = "value"
)

// Defaults applied when a facet has no explicit configuration.
const (
	DefaultSize     = 10
	DefaultMinCount = 1
)

// Config is the per-field facet configuration.
type Config struct {
	Size           int
	MinCount       int
	Order          Order
	IncludeMissing bool
}

// Normalize fills unset config fields with defaults.
func (c Config) Normalize() Config {
	if c.Size <= 0 {
		c.Size = DefaultSize
	}
	if c.MinCount <= 0 {
		c.MinCount = DefaultMinCount
	}
	if c.Order != ByValue {
		c.Order = ByCount
	}
	return c
}

// Value is one distinct value with its document count and display label.
type Value struct {
	Value string `json:"value"`
	Count int    `json:"count"`
	Label string `json:"label,omitempty"`
}

// Result is the aggregation outcome for one field.
type Result struct {
	Field        string  `json:"field"`
	Values       []Value `json:"values"`
	TotalCount   int     `json:"total_count"`
	MissingCount int     `json:"missing_count,omitempty"`
}

// Bucket is one date histogram bucket.
type Bucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Stats holds numeric aggregation results for one field.
type Stats struct {
	Field string  `json:"field"`
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
}
