package savedsearch

import (
	"context"

	domsaved "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/savedsearch"
)

// Store is the saved search persistence port.
type Store interface {
	Upsert(ctx context.Context, s *domsaved.SavedSearch) error
	Get(ctx context.Context, id string) (domsaved.SavedSearch, error)
	Delete(ctx context.Context, id, ownerID string) error
	ListByOwner(ctx context.Context, ownerID string) ([]domsaved.SavedSearch, error)
	ListPublic(ctx context.Context) ([]domsaved.SavedSearch, error)
}
