package suggest

import (
	"context"
	"time"

	domana "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/analytics"
	domdoc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/search/query"
)

// EventSource reads recent search events for query and vocabulary
// suggestions.
type EventSource interface {
	SearchEvents(ctx context.Context, since, until time.Time, limit int) ([]domana.Event, error)
}

// DocumentSource reads indexed documents for content and tag
// suggestions.
type DocumentSource interface {
	Find(ctx context.Context, clauses []query.FilterClause) ([]domdoc.Document, error)
}
