package analytics

import (
	"context"
	"time"

	domana "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/analytics"
)

// EventLog is the append-only persistence port for search analytics.
type EventLog interface {
	AppendSearch(ctx context.Context, ev domana.Event) error
	AppendClick(ctx context.Context, ev domana.ClickEvent) error
	SearchEvents(ctx context.Context, since, until time.Time, limit int) ([]domana.Event, error)
	ClickEvents(ctx context.Context, since, until time.Time, limit int) ([]domana.ClickEvent, error)
}
