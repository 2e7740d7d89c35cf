// Package patch models partial updates to indexed documents.
package patch

import (
	"fmt"
	"time"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document"
)

// Patch is a partial document update. Nil fields are unchanged.
type Patch struct {
	title             *string
	overview          *string
	contentType       *string
	difficulty        *string
	targetAudience    *string
	tags              []string
	categories        []string
	qualityScore      *float64
	estimatedDuration *int
	status            *string
	sections          []document.Section
	hasSections       bool
	metadata          map[string]any
}

// Builder-style setters keep callers from threading a dozen pointers through New.

// New creates an empty Patch.
func New() *Patch { return &Patch{} }

// Title sets a new title.
func (p *Patch) Title(v string) *Patch { p.title = &v; return p }

// Overview sets a new overview.
func (p *Patch) Overview(v string) *Patch { p.overview = &v; return p }

// ContentType sets a new content type tag set.
func (p *Patch) ContentType(v string) *Patch { p.contentType = &v; return p }

// Difficulty sets a new difficulty level.
func (p *Patch) Difficulty(v string) *Patch { p.difficulty = &v; return p }

// TargetAudience sets a new target audience.
func (p *Patch) TargetAudience(v string) *Patch { p.targetAudience = &v; return p }

// Tags replaces the tag set.
func (p *Patch) Tags(v []string) *Patch { p.tags = v; return p }

// Categories replaces the category set.
func (p *Patch) Categories(v []string) *Patch { p.categories = v; return p }

// QualityScore sets a new quality score.
func (p *Patch) QualityScore(v float64) *Patch { p.qualityScore = &v; return p }

// EstimatedDuration sets a new estimated duration in minutes.
func (p *Patch) EstimatedDuration(v int) *Patch { p.estimatedDuration = &v; return p }

// Status sets a new lifecycle status.
func (p *Patch) Status(v string) *Patch { p.status = &v; return p }

// Sections replaces the outline sections.
func (p *Patch) Sections(v []document.Section) *Patch { p.sections = v; p.hasSections = true; return p }

// Metadata merges keys into the metadata map.
func (p *Patch) Metadata(v map[string]any) *Patch { p.metadata = v; return p }

// IsEmpty reports whether the patch changes nothing.
func (p *Patch) IsEmpty() bool {
	return p.title == nil && p.overview == nil && p.contentType == nil &&
		p.difficulty == nil && p.targetAudience == nil && p.tags == nil &&
		p.categories == nil && p.qualityScore == nil && p.estimatedDuration == nil &&
		p.status == nil && !p.hasSections && p.metadata == nil
}

// TouchesSearchableText reports whether applying the patch requires the
// searchable text to be recomputed.
func (p *Patch) TouchesSearchableText() bool {
	return p.title != nil || p.overview != nil || p.hasSections
}

// Apply merges the patch into doc and returns the updated document.
// The searchable text is fully recomputed when any contributing field
// changed, and UpdatedAt is always bumped.
func (p *Patch) Apply(doc document.Document) (document.Document, error) {
	if p.IsEmpty() {
		return document.Document{}, fmt.Errorf("at least one field must be provided")
	}

	attrs := doc.Attributes()
	if p.title != nil {
		attrs.Title = *p.title
	}
	if p.overview != nil {
		attrs.Overview = *p.overview
	}
	if p.contentType != nil {
		attrs.ContentType = *p.contentType
	}
	if p.difficulty != nil {
		attrs.Difficulty = *p.difficulty
	}
	if p.targetAudience != nil {
		attrs.TargetAudience = *p.targetAudience
	}
	if p.tags != nil {
		attrs.Tags = p.tags
	}
	if p.categories != nil {
		attrs.Categories = p.categories
	}
	if p.qualityScore != nil {
		attrs.QualityScore = p.qualityScore
	}
	if p.estimatedDuration != nil {
		attrs.EstimatedDuration = p.estimatedDuration
	}
	if p.status != nil {
		attrs.Status = *p.status
	}
	if p.hasSections {
		attrs.Sections = p.sections
	}
	if p.metadata != nil {
		// Merge into a fresh map; attrs shares the source document's
		// map and must not be written through.
		merged := make(map[string]any, len(attrs.Metadata)+len(p.metadata))
		for k, v := range attrs.Metadata {
			merged[k] = v
		}
		for k, v := range p.metadata {
			merged[k] = v
		}
		attrs.Metadata = merged
	}
	attrs.UpdatedAt = time.Now().UTC()

	// document.New re-derives the searchable text from the merged attributes.
	updated, err := document.New(attrs)
	if err != nil {
		return document.Document{}, fmt.Errorf("apply patch: %w", err)
	}
	return updated, nil
}
