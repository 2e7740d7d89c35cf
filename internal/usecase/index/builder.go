package index

import (
	"fmt"
	"strings"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain"
	domdoc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document"
)

// Content type tags, one per optional artifact kind.
const (
	TypePodcastScript   = "podcast_script"
	TypeStudyGuide      = "study_guide"
	TypeOnePagerSummary = "one_pager_summary"
	TypeFAQ             = "faq"
	TypeFlashcards      = "flashcards"
	TypeReadingGuide    = "reading_guide"
)

// BuildIndexDocument converts a completed generation record into an
// indexable document. Records without an outline cannot be indexed and
// return domain.ErrMissingOutline.
func BuildIndexDocument(rec Record) (domdoc.Document, error) {
	if rec.Outline == nil {
		return domdoc.Document{}, domain.ErrMissingOutline
	}

	sections := make([]domdoc.Section, 0, len(rec.Outline.Sections))
	for _, s := range rec.Outline.Sections {
		sections = append(sections, domdoc.NewSection(s.Title, s.Description, s.KeyPoints))
	}

	doc, err := domdoc.New(domdoc.Attributes{
		ID:                rec.ID,
		OwnerID:           rec.OwnerID,
		Title:             rec.Outline.Title,
		Overview:          rec.Outline.Overview,
		ContentType:       contentTypeOf(rec.Artifacts),
		Difficulty:        rec.Difficulty,
		TargetAudience:    rec.TargetAudience,
		Tags:              rec.Tags,
		Categories:        rec.Categories,
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
		QualityScore:      rec.QualityScore,
		EstimatedDuration: rec.EstimatedDuration,
		Sections:          sections,
		// Learning objectives live on the outline only, not as a
		// document field, but still belong in the searchable text.
		ExtraSearchable: strings.Join(rec.Outline.LearningObjectives, " "),
	})
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("build document for %s: %w", rec.ID, err)
	}
	return doc, nil
}

// contentTypeOf joins the tags of every artifact present on the record.
func contentTypeOf(a Artifacts) string {
	var tags []string
	if a.PodcastScript != "" {
		tags = append(tags, TypePodcastScript)
	}
	if a.StudyGuide != "" {
		tags = append(tags, TypeStudyGuide)
	}
	if a.OnePagerSummary != "" {
		tags = append(tags, TypeOnePagerSummary)
	}
	if len(a.FAQItems) > 0 {
		tags = append(tags, TypeFAQ)
	}
	if a.FlashcardCount > 0 {
		tags = append(tags, TypeFlashcards)
	}
	if len(a.ReadingGuideQuestions) > 0 {
		tags = append(tags, TypeReadingGuide)
	}
	return strings.Join(tags, ",")
}
