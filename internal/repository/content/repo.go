// Package content reads completed generation records written by the
// content platform into the shared store, serving them to the indexing
// pipeline.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/db"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/usecase/index"
)

// StatusCompleted marks records eligible for indexing.
const StatusCompleted = "completed"

// store is the consumer interface for content records (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

type sectionDTO struct {
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	KeyPoints       []string `json:"key_points,omitempty"`
	DurationMinutes int      `json:"duration_minutes,omitempty"`
}

type outlineDTO struct {
	Title              string       `json:"title"`
	Overview           string       `json:"overview,omitempty"`
	LearningObjectives []string     `json:"learning_objectives,omitempty"`
	Sections           []sectionDTO `json:"sections,omitempty"`
}

type artifactsDTO struct {
	PodcastScript         string   `json:"podcast_script,omitempty"`
	StudyGuide            string   `json:"study_guide,omitempty"`
	OnePagerSummary       string   `json:"one_pager_summary,omitempty"`
	FAQItems              []string `json:"faq_items,omitempty"`
	FlashcardCount        int      `json:"flashcard_count,omitempty"`
	ReadingGuideQuestions []string `json:"reading_guide_questions,omitempty"`
}

type recordDTO struct {
	ID                string       `json:"id"`
	OwnerID           string       `json:"owner_id,omitempty"`
	Status            string       `json:"status"`
	Difficulty        string       `json:"difficulty,omitempty"`
	TargetAudience    string       `json:"target_audience,omitempty"`
	Tags              []string     `json:"tags,omitempty"`
	Categories        []string     `json:"categories,omitempty"`
	QualityScore      *float64     `json:"quality_score,omitempty"`
	EstimatedDuration *int         `json:"estimated_duration,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
	Outline           *outlineDTO  `json:"outline,omitempty"`
	Artifacts         artifactsDTO `json:"artifacts,omitempty"`
}

// Repo implements the indexing pipeline's content source over db.Store.
type Repo struct {
	store store
}

// New creates a content record repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// ListCompleted returns one page of completed records updated at or
// after since, ordered by ID for a stable page walk.
func (r *Repo) ListCompleted(ctx context.Context, since time.Time, offset, limit int) ([]index.Record, error) {
	keys, err := r.store.Scan(ctx, contentKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan content records: %w", err)
	}
	sort.Strings(keys)

	raws, err := r.store.MGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch content records: %w", err)
	}

	eligible := make([]index.Record, 0, len(raws))
	for _, raw := range raws {
		if raw == nil {
			continue // expired between scan and fetch
		}
		var dto recordDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			continue // skip malformed records
		}
		if dto.Status != StatusCompleted {
			continue
		}
		if !since.IsZero() && dto.UpdatedAt.Before(since) {
			continue
		}
		eligible = append(eligible, dto.toRecord())
	}

	if offset >= len(eligible) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(eligible) {
		end = len(eligible)
	}
	return eligible[offset:end], nil
}

// Get returns a single record by ID. Missing records map to
// domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, id string) (index.Record, error) {
	raw, err := r.store.Get(ctx, contentKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return index.Record{}, domain.ErrNotFound
		}
		return index.Record{}, fmt.Errorf("get content record %s: %w", id, err)
	}
	var dto recordDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return index.Record{}, fmt.Errorf("unmarshal content record %s: %w", id, err)
	}
	return dto.toRecord(), nil
}

// Exists reports whether the record is still present.
func (r *Repo) Exists(ctx context.Context, id string) (bool, error) {
	ok, err := r.store.Exists(ctx, contentKey(id))
	if err != nil {
		return false, fmt.Errorf("check content record %s: %w", id, err)
	}
	return ok, nil
}

func (d recordDTO) toRecord() index.Record {
	rec := index.Record{
		ID:                d.ID,
		OwnerID:           d.OwnerID,
		Status:            d.Status,
		Difficulty:        d.Difficulty,
		TargetAudience:    d.TargetAudience,
		Tags:              d.Tags,
		Categories:        d.Categories,
		QualityScore:      d.QualityScore,
		EstimatedDuration: d.EstimatedDuration,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
		Artifacts: index.Artifacts{
			PodcastScript:         d.Artifacts.PodcastScript,
			StudyGuide:            d.Artifacts.StudyGuide,
			OnePagerSummary:       d.Artifacts.OnePagerSummary,
			FAQItems:              d.Artifacts.FAQItems,
			FlashcardCount:        d.Artifacts.FlashcardCount,
			ReadingGuideQuestions: d.Artifacts.ReadingGuideQuestions,
		},
	}
	if d.Outline != nil {
		outline := &index.Outline{
			Title:              d.Outline.Title,
			Overview:           d.Outline.Overview,
			LearningObjectives: d.Outline.LearningObjectives,
		}
		for _, s := range d.Outline.Sections {
			outline.Sections = append(outline.Sections, index.OutlineSection{
				Title:           s.Title,
				Description:     s.Description,
				KeyPoints:       s.KeyPoints,
				DurationMinutes: s.DurationMinutes,
			})
		}
		rec.Outline = outline
	}
	return rec
}

func contentKey(id string) string { return domain.KeyPrefix + "content:" + id }

var _ index.ContentSource = (*Repo)(nil)
