package index

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain"
)

func completedRecord(id string) Record {
	return Record{
		ID:             id,
		OwnerID:        "user-1",
		Status:         "completed",
		Difficulty:     "beginner",
		TargetAudience: "high school",
		Tags:           []string{"math"},
		Categories:     []string{"algebra"},
		CreatedAt:      time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		Outline: &Outline{
			Title:              "Quadratic Equations",
			Overview:           "Solving second degree polynomials",
			LearningObjectives: []string{"Derive the quadratic formula"},
			Sections: []OutlineSection{
				{Title: "Factoring", Description: "Product of binomials", KeyPoints: []string{"zero product rule"}, DurationMinutes: 15},
			},
		},
		Artifacts: Artifacts{StudyGuide: "guide text", FlashcardCount: 12},
	}
}

func TestBuildIndexDocument(t *testing.T) {
	doc, err := BuildIndexDocument(completedRecord("content-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID() != "content-1" || doc.Title() != "Quadratic Equations" {
		t.Errorf("unexpected identity: %s %q", doc.ID(), doc.Title())
	}
	if len(doc.Sections()) != 1 || doc.Sections()[0].Title() != "Factoring" {
		t.Errorf("unexpected sections: %+v", doc.Sections())
	}
}

func TestBuildIndexDocument_MissingOutline(t *testing.T) {
	rec := completedRecord("content-1")
	rec.Outline = nil

	_, err := BuildIndexDocument(rec)
	if !errors.Is(err, domain.ErrMissingOutline) {
		t.Errorf("expected ErrMissingOutline, got %v", err)
	}
}

func TestBuildIndexDocument_ContentTypeFromArtifacts(t *testing.T) {
	rec := completedRecord("content-1")

	doc, err := BuildIndexDocument(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ContentType() != "study_guide,flashcards" {
		t.Errorf("expected present artifacts joined, got %q", doc.ContentType())
	}

	rec.Artifacts = Artifacts{
		PodcastScript:         "script",
		OnePagerSummary:       "summary",
		FAQItems:              []string{"q"},
		ReadingGuideQuestions: []string{"q"},
	}
	doc, err = BuildIndexDocument(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ContentType() != "podcast_script,one_pager_summary,faq,reading_guide" {
		t.Errorf("unexpected content type %q", doc.ContentType())
	}

	rec.Artifacts = Artifacts{}
	doc, err = BuildIndexDocument(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ContentType() != "" {
		t.Errorf("expected empty content type, got %q", doc.ContentType())
	}
}

func TestBuildIndexDocument_LearningObjectivesSearchable(t *testing.T) {
	doc, err := BuildIndexDocument(completedRecord("content-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc.SearchableText(), "derive the quadratic formula") {
		t.Errorf("expected objectives in searchable text, got %q", doc.SearchableText())
	}

	rec := completedRecord("content-2")
	rec.Outline.LearningObjectives = nil
	doc, err = BuildIndexDocument(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(doc.SearchableText(), "derive") {
		t.Errorf("unexpected objective text: %q", doc.SearchableText())
	}
}

func TestBuildIndexDocument_InvalidRecord(t *testing.T) {
	rec := completedRecord("")
	if _, err := BuildIndexDocument(rec); err == nil {
		t.Error("expected error for empty record ID")
	}
}
