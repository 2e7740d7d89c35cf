package document

import (
	"fmt"
	"strings"
	"time"
)

// StatusPublished is the default lifecycle status for indexed documents.
const StatusPublished = "published"

// MaxIDLength is the maximum allowed document ID length.
const MaxIDLength = 256

// Section is one outline section of an indexed document.
type Section struct {
	title       string
	description string
	keyPoints   []string
}

// NewSection creates a document section.
func NewSection(title, description string, keyPoints []string) Section {
	return Section{title: title, description: description, keyPoints: append([]string(nil), keyPoints...)}
}

// Title returns the section title.
func (s Section) Title() string { return s.title }

// Description returns the section description.
func (s Section) Description() string { return s.description }

// KeyPoints returns the section key points.
func (s Section) KeyPoints() []string { return s.keyPoints }

// Attributes holds the client-settable fields of an indexed document.
// SearchableText is always derived and never supplied by callers.
type Attributes struct {
	ID                string
	OwnerID           string
	Title             string
	Overview          string
	ContentType       string
	Difficulty        string
	TargetAudience    string
	Tags              []string
	Categories        []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	QualityScore      *float64
	EstimatedDuration *int
	Status            string
	Sections          []Section
	Metadata          map[string]any
	// ExtraSearchable is additional text contributed by the indexing
	// pipeline (learning objectives). It is folded into the derived
	// searchable text and must survive partial updates.
	ExtraSearchable string
}

// Document is the unit of search (immutable value object).
type Document struct {
	attrs          Attributes
	searchableText string
	indexedAt      time.Time
}

// New validates and creates a Document. Status defaults to published,
// timestamps default to now, and searchable text is derived from the
// title, overview, and section content.
func New(attrs Attributes) (Document, error) {
	if attrs.ID == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if len(attrs.ID) > MaxIDLength {
		return Document{}, fmt.Errorf("document ID too long (max %d)", MaxIDLength)
	}
	if attrs.Title == "" {
		return Document{}, fmt.Errorf("title is required")
	}
	if attrs.QualityScore != nil && (*attrs.QualityScore < 0 || *attrs.QualityScore > 1) {
		return Document{}, fmt.Errorf("quality score must be between 0 and 1")
	}
	if attrs.Status == "" {
		attrs.Status = StatusPublished
	}
	now := time.Now().UTC()
	if attrs.CreatedAt.IsZero() {
		attrs.CreatedAt = now
	}
	if attrs.UpdatedAt.IsZero() {
		attrs.UpdatedAt = now
	}
	return Document{
		attrs:          attrs,
		searchableText: deriveSearchableText(attrs),
		indexedAt:      now,
	}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
// The stored searchable text is trusted as-is.
func Reconstruct(attrs Attributes, searchableText string, indexedAt time.Time) Document {
	return Document{attrs: attrs, searchableText: searchableText, indexedAt: indexedAt}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.attrs.ID }

// OwnerID returns the owning user's identifier.
func (d *Document) OwnerID() string { return d.attrs.OwnerID }

// Title returns the document title.
func (d *Document) Title() string { return d.attrs.Title }

// Overview returns the document overview text.
func (d *Document) Overview() string { return d.attrs.Overview }

// ContentType returns the comma-joined content artifact tags.
func (d *Document) ContentType() string { return d.attrs.ContentType }

// Difficulty returns the difficulty level.
func (d *Document) Difficulty() string { return d.attrs.Difficulty }

// TargetAudience returns the intended audience.
func (d *Document) TargetAudience() string { return d.attrs.TargetAudience }

// Tags returns the document tags.
func (d *Document) Tags() []string { return d.attrs.Tags }

// Categories returns the document categories.
func (d *Document) Categories() []string { return d.attrs.Categories }

// CreatedAt returns the creation time.
func (d *Document) CreatedAt() time.Time { return d.attrs.CreatedAt }

// UpdatedAt returns the last modification time.
func (d *Document) UpdatedAt() time.Time { return d.attrs.UpdatedAt }

// QualityScore returns the quality score in [0,1], or nil if unset.
func (d *Document) QualityScore() *float64 { return d.attrs.QualityScore }

// EstimatedDuration returns the estimated duration in minutes, or nil if unset.
func (d *Document) EstimatedDuration() *int { return d.attrs.EstimatedDuration }

// Status returns the lifecycle status.
func (d *Document) Status() string { return d.attrs.Status }

// Sections returns the outline sections.
func (d *Document) Sections() []Section { return d.attrs.Sections }

// Metadata returns the free-form metadata map.
func (d *Document) Metadata() map[string]any { return d.attrs.Metadata }

// ExtraSearchable returns the pipeline-contributed searchable text.
func (d *Document) ExtraSearchable() string { return d.attrs.ExtraSearchable }

// SearchableText returns the derived lower-cased search text.
func (d *Document) SearchableText() string { return d.searchableText }

// IndexedAt returns the time the document was last written to the index.
func (d *Document) IndexedAt() time.Time { return d.indexedAt }

// Attributes returns a copy of the settable attributes (storage serialization).
func (d *Document) Attributes() Attributes { return d.attrs }

// deriveSearchableText concatenates title, overview, all section
// titles/descriptions/key points, and any extra searchable text,
// lower-cased and space-joined.
func deriveSearchableText(attrs Attributes) string {
	parts := make([]string, 0, 2+3*len(attrs.Sections))
	if attrs.Title != "" {
		parts = append(parts, attrs.Title)
	}
	if attrs.Overview != "" {
		parts = append(parts, attrs.Overview)
	}
	for _, s := range attrs.Sections {
		if s.title != "" {
			parts = append(parts, s.title)
		}
		if s.description != "" {
			parts = append(parts, s.description)
		}
		parts = append(parts, s.keyPoints...)
	}
	if attrs.ExtraSearchable != "" {
		parts = append(parts, attrs.ExtraSearchable)
	}
	return strings.ToLower(strings.Join(parts, " "))
}
