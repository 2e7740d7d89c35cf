// Package index drives batch and incremental indexing of completed
// content records into the search backend.
package index

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain"
	dombatch "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/batch"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/metrics"
)

// DefaultBatchSize is the reindex page size when the caller passes 0.
const DefaultBatchSize = 50

// searchableFields are the record fields whose change requires a
// document rebuild. Changes to any other field are ignored by
// UpdateForContent.
var searchableFields = map[string]struct{}{
	"title":               {},
	"overview":            {},
	"sections":            {},
	"learning_objectives": {},
	"tags":                {},
	"categories":          {},
	"difficulty":          {},
	"target_audience":     {},
	"status":              {},
}

// Config tunes the indexing pipeline.
type Config struct {
	BatchSize      int     // reindex page size (default 50)
	PagesPerSecond float64 // reindex pacing (default 2)
}

// Defaults fills unset config fields.
func (c Config) Defaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.PagesPerSecond <= 0 {
		c.PagesPerSecond = 2
	}
	return c
}

// Pipeline converts content records into indexed documents and keeps
// the index in sync with the content source.
type Pipeline struct {
	source  ContentSource
	backend Indexer
	docs    DocumentLister
	cfg     Config
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New creates an indexing pipeline.
func New(source ContentSource, backend Indexer, docs DocumentLister, cfg Config, logger *zap.Logger) *Pipeline {
	cfg = cfg.Defaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		source:  source,
		backend: backend,
		docs:    docs,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.PagesPerSecond), 1),
		logger:  logger,
	}
}

// ReindexAll rebuilds the index from every completed record updated at
// or after since (zero time reindexes everything). The loop keeps no
// checkpoint: an interrupted run restarts from the beginning, or the
// caller narrows the window with since. Pages are rate limited so the
// loop does not monopolize the store; cancelling ctx stops between
// items and returns the partial report.
func (p *Pipeline) ReindexAll(ctx context.Context, batchSize int, since time.Time) dombatch.Report {
	if batchSize <= 0 {
		batchSize = p.cfg.BatchSize
	}

	started := time.Now()
	var results []dombatch.Result
	offset := 0
	for {
		if err := p.limiter.Wait(ctx); err != nil {
			p.logger.Warn("reindex interrupted", zap.Int("offset", offset), zap.Error(err))
			break
		}
		page, err := p.source.ListCompleted(ctx, since, offset, batchSize)
		if err != nil {
			p.logger.Error("reindex page fetch failed", zap.Int("offset", offset), zap.Error(err))
			results = append(results, dombatch.NewError(fmt.Sprintf("page@%d", offset), err))
			break
		}
		if len(page) == 0 {
			break
		}
		for _, rec := range page {
			if ctx.Err() != nil {
				p.logger.Warn("reindex interrupted", zap.Int("offset", offset), zap.Error(ctx.Err()))
				return p.finish(ctx, results, started)
			}
			results = append(results, p.indexRecord(ctx, rec))
		}
		offset += len(page)
	}
	return p.finish(ctx, results, started)
}

func (p *Pipeline) finish(ctx context.Context, results []dombatch.Result, started time.Time) dombatch.Report {
	p.backend.RefreshIndex(ctx)
	rep := dombatch.Summarize(results)
	p.logger.Info("reindex finished",
		zap.Int("total", rep.Total),
		zap.Int("success", rep.Success),
		zap.Int("failed", rep.Failed),
		zap.Duration("took", time.Since(started)),
	)
	return rep
}

func (p *Pipeline) indexRecord(ctx context.Context, rec Record) dombatch.Result {
	doc, err := BuildIndexDocument(rec)
	if err != nil {
		if errors.Is(err, domain.ErrMissingOutline) {
			// Not indexable, not a failure.
			return dombatch.NewOK(rec.ID)
		}
		return dombatch.NewError(rec.ID, err)
	}
	if !p.backend.IndexDocument(ctx, &doc) {
		return dombatch.NewError(rec.ID, fmt.Errorf("index document %s failed", rec.ID))
	}
	return dombatch.NewOK(rec.ID)
}

// RemoveFromIndex deletes one document from the index.
func (p *Pipeline) RemoveFromIndex(ctx context.Context, id string) bool {
	return p.backend.DeleteDocument(ctx, id)
}

// UpdateForContent re-indexes the record behind id if any changed field
// affects the searchable document; otherwise it is a no-op returning
// true.
func (p *Pipeline) UpdateForContent(ctx context.Context, id string, changedFields []string) bool {
	if !touchesSearchable(changedFields) {
		return true
	}
	rec, err := p.source.Get(ctx, id)
	if err != nil {
		p.logger.Error("fetch record for update failed", zap.String("id", id), zap.Error(err))
		return false
	}
	res := p.indexRecord(ctx, rec)
	return res.Status() == dombatch.StatusOK
}

func touchesSearchable(fields []string) bool {
	for _, f := range fields {
		if _, ok := searchableFields[f]; ok {
			return true
		}
	}
	return false
}

// CleanupOrphans deletes indexed documents whose source record no
// longer exists. Returns the number of documents removed.
func (p *Pipeline) CleanupOrphans(ctx context.Context) (int, error) {
	docs, err := p.docs.Find(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("list indexed documents: %w", err)
	}
	removed := 0
	for i := range docs {
		if ctx.Err() != nil {
			return removed, ctx.Err()
		}
		id := docs[i].ID()
		exists, err := p.source.Exists(ctx, id)
		if err != nil {
			p.logger.Error("orphan check failed", zap.String("id", id), zap.Error(err))
			continue
		}
		if exists {
			continue
		}
		if p.backend.DeleteDocument(ctx, id) {
			removed++
			metrics.IncIndexOp("orphan_cleanup", "ok")
		} else {
			metrics.IncIndexOp("orphan_cleanup", "error")
		}
	}
	if removed > 0 {
		p.logger.Info("orphan cleanup removed documents", zap.Int("removed", removed))
	}
	return removed, nil
}
