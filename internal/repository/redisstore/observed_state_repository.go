package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"household-sync-be/pkg/chorewatch"

	"github.com/redis/go-redis/v9"
)

const observedStatePrefix = "chorewatch:observed:"

// ObservedStateRepository stores poll baselines as JSON strings in Redis,
// one key per device/group pair, without expiry.
type ObservedStateRepository struct {
	rdb *redis.Client
}

func NewObservedStateRepository(rdb *redis.Client) *ObservedStateRepository {
	return &ObservedStateRepository{rdb: rdb}
}

func (r *ObservedStateRepository) Get(ctx context.Context, key string) (*chorewatch.ObservedState, error) {
	raw, err := r.rdb.Get(ctx, observedStatePrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read observed state %s: %w", key, err)
	}

	var state chorewatch.ObservedState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to decode observed state %s: %w", key, err)
	}
	return &state, nil
}

func (r *ObservedStateRepository) Put(ctx context.Context, key string, state chorewatch.ObservedState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode observed state: %w", err)
	}
	if err := r.rdb.Set(ctx, observedStatePrefix+key, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to write observed state %s: %w", key, err)
	}
	return nil
}

func (r *ObservedStateRepository) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, observedStatePrefix+key).Err()
}
