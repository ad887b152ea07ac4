package redisstore

import (
	"context"
	"os"
	"testing"

	"household-sync-be/pkg/chorewatch"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservedStateRepository(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}

	opt, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	defer rdb.Close()

	ctx := context.Background()
	repo := NewObservedStateRepository(rdb)
	key := "test:" + uuid.NewString()
	defer repo.Delete(ctx, key)

	got, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)

	chores, name := 2, "Flat"
	require.NoError(t, repo.Put(ctx, key, chorewatch.ObservedState{LastChoreCount: &chores, LastGroupName: &name}))

	got, err = repo.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, *got.LastChoreCount)
	assert.Nil(t, got.LastGroceryCount)
	assert.Equal(t, "Flat", *got.LastGroupName)
}
