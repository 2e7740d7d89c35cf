package document

import (
	"time"

	domdoc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document"
)

// docDTO is the stored JSON shape of an indexed document.
type docDTO struct {
	ID                string         `json:"id"`
	OwnerID           string         `json:"owner_id,omitempty"`
	Title             string         `json:"title"`
	Overview          string         `json:"overview,omitempty"`
	ContentType       string         `json:"content_type,omitempty"`
	Difficulty        string         `json:"difficulty,omitempty"`
	TargetAudience    string         `json:"target_audience,omitempty"`
	Tags              []string       `json:"tags,omitempty"`
	Categories        []string       `json:"categories,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	QualityScore      *float64       `json:"quality_score,omitempty"`
	EstimatedDuration *int           `json:"estimated_duration,omitempty"`
	Status            string         `json:"status"`
	SearchableText    string         `json:"searchable_text"`
	ExtraSearchable   string         `json:"extra_searchable,omitempty"`
	Sections          []sectionDTO   `json:"sections,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
	IndexedAt         time.Time      `json:"indexed_at"`
}

type sectionDTO struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	KeyPoints   []string `json:"key_points,omitempty"`
}

func toDTO(doc *domdoc.Document) docDTO {
	attrs := doc.Attributes()
	sections := make([]sectionDTO, len(attrs.Sections))
	for i, s := range attrs.Sections {
		sections[i] = sectionDTO{Title: s.Title(), Description: s.Description(), KeyPoints: s.KeyPoints()}
	}
	return docDTO{
		ID:                attrs.ID,
		OwnerID:           attrs.OwnerID,
		Title:             attrs.Title,
		Overview:          attrs.Overview,
		ContentType:       attrs.ContentType,
		Difficulty:        attrs.Difficulty,
		TargetAudience:    attrs.TargetAudience,
		Tags:              attrs.Tags,
		Categories:        attrs.Categories,
		CreatedAt:         attrs.CreatedAt,
		UpdatedAt:         attrs.UpdatedAt,
		QualityScore:      attrs.QualityScore,
		EstimatedDuration: attrs.EstimatedDuration,
		Status:            attrs.Status,
		SearchableText:    doc.SearchableText(),
		ExtraSearchable:   attrs.ExtraSearchable,
		Sections:          sections,
		Metadata:          attrs.Metadata,
		IndexedAt:         doc.IndexedAt(),
	}
}

func (d docDTO) toDomain() domdoc.Document {
	sections := make([]domdoc.Section, len(d.Sections))
	for i, s := range d.Sections {
		sections[i] = domdoc.NewSection(s.Title, s.Description, s.KeyPoints)
	}
	attrs := domdoc.Attributes{
		ID:                d.ID,
		OwnerID:           d.OwnerID,
		Title:             d.Title,
		Overview:          d.Overview,
		ContentType:       d.ContentType,
		Difficulty:        d.Difficulty,
		TargetAudience:    d.TargetAudience,
		Tags:              d.Tags,
		Categories:        d.Categories,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
		QualityScore:      d.QualityScore,
		EstimatedDuration: d.EstimatedDuration,
		Status:            d.Status,
		Sections:          sections,
		Metadata:          d.Metadata,
		ExtraSearchable:   d.ExtraSearchable,
	}
	return domdoc.Reconstruct(attrs, d.SearchableText, d.IndexedAt)
}
