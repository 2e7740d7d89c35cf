package index

import (
	"context"
	"time"

	domdoc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/search/query"
)

// OutlineSection is one section of a content outline. Section durations
// exist on the source side only and are dropped when indexing.
type OutlineSection struct {
	Title           string
	Description     string
	KeyPoints       []string
	DurationMinutes int
}

// Outline is the structured plan a generation record was built from.
// Records without an outline are not indexable.
type Outline struct {
	Title              string
	Overview           string
	LearningObjectives []string
	Sections           []OutlineSection
}

// Artifacts holds the optional generated content pieces of a record.
// Presence of a piece contributes its tag to the document content type.
type Artifacts struct {
	PodcastScript         string
	StudyGuide            string
	OnePagerSummary       string
	FAQItems              []string
	FlashcardCount        int
	ReadingGuideQuestions []string
}

// Record is one completed content generation record as supplied by the
// content source.
type Record struct {
	ID                string
	OwnerID           string
	Status            string
	Difficulty        string
	TargetAudience    string
	Tags              []string
	Categories        []string
	QualityScore      *float64
	EstimatedDuration *int
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Outline           *Outline
	Artifacts         Artifacts
}

// ContentSource supplies completed generation records for indexing.
type ContentSource interface {
	// ListCompleted returns one page of completed records updated at or
	// after since (zero time means no lower bound).
	ListCompleted(ctx context.Context, since time.Time, offset, limit int) ([]Record, error)
	// Get returns a single record by ID.
	Get(ctx context.Context, id string) (Record, error)
	// Exists reports whether the record still exists at the source.
	Exists(ctx context.Context, id string) (bool, error)
}

// Indexer is the slice of the search backend the pipeline drives.
type Indexer interface {
	IndexDocument(ctx context.Context, doc *domdoc.Document) bool
	DeleteDocument(ctx context.Context, id string) bool
	RefreshIndex(ctx context.Context) bool
}

// DocumentLister enumerates indexed documents (orphan cleanup).
type DocumentLister interface {
	Find(ctx context.Context, clauses []query.FilterClause) ([]domdoc.Document, error)
}
