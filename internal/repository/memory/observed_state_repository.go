package memory

import (
	"context"

	"household-sync-be/pkg/chorewatch"

	"github.com/patrickmn/go-cache"
)

// ObservedStateRepository keeps poll baselines in process memory. They never
// expire; a restart simply re-establishes every baseline silently.
type ObservedStateRepository struct {
	cache *cache.Cache
}

func NewObservedStateRepository() *ObservedStateRepository {
	return &ObservedStateRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *ObservedStateRepository) Get(ctx context.Context, key string) (*chorewatch.ObservedState, error) {
	if x, found := r.cache.Get(key); found {
		state := x.(chorewatch.ObservedState).Clone()
		return &state, nil
	}
	return nil, nil
}

func (r *ObservedStateRepository) Put(ctx context.Context, key string, state chorewatch.ObservedState) error {
	r.cache.Set(key, state.Clone(), cache.NoExpiration)
	return nil
}

func (r *ObservedStateRepository) Delete(ctx context.Context, key string) error {
	r.cache.Delete(key)
	return nil
}
