// Package analytics persists the append-only search event log in
// time-scored sorted sets.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/db"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain"
	domana "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/analytics"
)

// store is the consumer interface for the event log (ISP).
type store interface {
	ZAdd(ctx context.Context, key string, members ...db.ZMember) error
	ZRangeByScore(ctx context.Context, key string, min, max float64, limit int) ([]string, error)
	ZCard(ctx context.Context, key string) (int, error)
}

// Repo implements the analytics event log port over db.Store.
type Repo struct {
	store store
}

// New creates an analytics repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// AppendSearch records one search event, scored by its timestamp.
func (r *Repo) AppendSearch(ctx context.Context, ev domana.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	member := db.ZMember{Member: string(data), Score: float64(ev.Timestamp.UnixMilli())}
	if err := r.store.ZAdd(ctx, searchLogKey(), member); err != nil {
		return fmt.Errorf("append search event: %w", err)
	}
	return nil
}

// AppendClick records one click event, scored by its timestamp.
func (r *Repo) AppendClick(ctx context.Context, ev domana.ClickEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal click event: %w", err)
	}
	member := db.ZMember{Member: string(data), Score: float64(ev.Timestamp.UnixMilli())}
	if err := r.store.ZAdd(ctx, clickLogKey(), member); err != nil {
		return fmt.Errorf("append click event: %w", err)
	}
	return nil
}

// SearchEvents returns search events with since <= timestamp < until,
// oldest first, capped at limit (0 = no cap).
func (r *Repo) SearchEvents(ctx context.Context, since, until time.Time, limit int) ([]domana.Event, error) {
	raws, err := r.store.ZRangeByScore(
		ctx, searchLogKey(),
		float64(since.UnixMilli()), float64(until.UnixMilli()-1), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("range search events: %w", err)
	}
	events := make([]domana.Event, 0, len(raws))
	for _, raw := range raws {
		var ev domana.Event
		if err := json.Unmarshal([]byte(raw), &ev); err != nil {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// ClickEvents returns click events in the window, oldest first.
func (r *Repo) ClickEvents(ctx context.Context, since, until time.Time, limit int) ([]domana.ClickEvent, error) {
	raws, err := r.store.ZRangeByScore(
		ctx, clickLogKey(),
		float64(since.UnixMilli()), float64(until.UnixMilli()-1), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("range click events: %w", err)
	}
	events := make([]domana.ClickEvent, 0, len(raws))
	for _, raw := range raws {
		var ev domana.ClickEvent
		if err := json.Unmarshal([]byte(raw), &ev); err != nil {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// CountSearchEvents returns the total number of recorded search events.
func (r *Repo) CountSearchEvents(ctx context.Context) (int, error) {
	n, err := r.store.ZCard(ctx, searchLogKey())
	if err != nil {
		return 0, fmt.Errorf("count search events: %w", err)
	}
	return n, nil
}

func searchLogKey() string { return domain.KeyPrefix + "events:search" }
func clickLogKey() string  { return domain.KeyPrefix + "events:click" }
