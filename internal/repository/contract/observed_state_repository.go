package contract

import (
	"context"

	"household-sync-be/pkg/chorewatch"
)

// ObservedStateRepository keeps the poll baseline per device/group key.
// Get returns nil, nil when nothing was ever stored.
type ObservedStateRepository interface {
	Get(ctx context.Context, key string) (*chorewatch.ObservedState, error)
	Put(ctx context.Context, key string, state chorewatch.ObservedState) error
	Delete(ctx context.Context, key string) error
}
