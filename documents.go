package contentsearch

import (
	"context"
	"fmt"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document/patch"
	searchuc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/usecase/search"
)

// DocumentService maintains the document index.
type DocumentService struct {
	svc *searchuc.Service
}

// Patch is a partial document update. Nil fields are unchanged; slices
// replace the stored value when non-nil.
type Patch struct {
	Title             *string
	Overview          *string
	ContentType       *string
	Difficulty        *string
	TargetAudience    *string
	Tags              []string
	Categories        []string
	QualityScore      *float64
	EstimatedDuration *int
	Status            *string
	Sections          []Section
	Metadata          map[string]any
}

// Upsert validates and indexes one document.
func (d *DocumentService) Upsert(ctx context.Context, doc Document) error {
	internal, err := toInternalDocument(doc)
	if err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	if !d.svc.IndexDocument(ctx, &internal) {
		return fmt.Errorf("upsert %s: store failure", doc.ID)
	}
	return nil
}

// Bulk indexes documents independently; invalid and failed items are
// reported per item and the rest proceed.
func (d *DocumentService) Bulk(ctx context.Context, docs []Document) BulkReport {
	var invalid []ItemError
	valid := make([]document.Document, 0, len(docs))
	for i := range docs {
		internal, err := toInternalDocument(docs[i])
		if err != nil {
			invalid = append(invalid, ItemError{ID: docs[i].ID, Error: err.Error()})
			continue
		}
		valid = append(valid, internal)
	}

	report := BulkReport{Total: len(docs), Failed: len(invalid), Errors: invalid}
	if len(valid) > 0 {
		stored := d.svc.BulkIndexDocuments(ctx, valid)
		report.Succeeded = stored.Success
		report.Failed += stored.Failed
		for _, e := range stored.Errors {
			report.Errors = append(report.Errors, ItemError{ID: e.ID, Error: e.Error})
		}
	}
	return report
}

// Update merges a partial update into an indexed document. Returns
// false when the document is missing, the patch is empty, or the store
// fails.
func (d *DocumentService) Update(ctx context.Context, id string, p Patch) bool {
	return d.svc.UpdateDocument(ctx, id, toInternalPatch(p))
}

// Delete removes a document from the index.
func (d *DocumentService) Delete(ctx context.Context, id string) bool {
	return d.svc.DeleteDocument(ctx, id)
}

// Stats summarizes the current index contents.
func (d *DocumentService) Stats(ctx context.Context) IndexStats {
	s := d.svc.GetIndexStats(ctx)
	return IndexStats{
		TotalDocuments: s.TotalDocuments,
		ByStatus:       s.ByStatus,
		ByContentType:  s.ByContentType,
		LastIndexedAt:  s.LastIndexedAt,
	}
}

func toInternalPatch(p Patch) *patch.Patch {
	out := patch.New()
	if p.Title != nil {
		out.Title(*p.Title)
	}
	if p.Overview != nil {
		out.Overview(*p.Overview)
	}
	if p.ContentType != nil {
		out.ContentType(*p.ContentType)
	}
	if p.Difficulty != nil {
		out.Difficulty(*p.Difficulty)
	}
	if p.TargetAudience != nil {
		out.TargetAudience(*p.TargetAudience)
	}
	if p.Tags != nil {
		out.Tags(p.Tags)
	}
	if p.Categories != nil {
		out.Categories(p.Categories)
	}
	if p.QualityScore != nil {
		out.QualityScore(*p.QualityScore)
	}
	if p.EstimatedDuration != nil {
		out.EstimatedDuration(*p.EstimatedDuration)
	}
	if p.Status != nil {
		out.Status(*p.Status)
	}
	if p.Sections != nil {
		sections := make([]document.Section, len(p.Sections))
		for i, s := range p.Sections {
			sections[i] = document.NewSection(s.Title, s.Description, s.KeyPoints)
		}
		out.Sections(sections)
	}
	if p.Metadata != nil {
		out.Metadata(p.Metadata)
	}
	return out
}
