package memory

import (
	"context"
	"testing"

	"household-sync-be/pkg/chorewatch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservedStateRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewObservedStateRepository()

	got, err := repo.Get(ctx, "dev:grp")
	require.NoError(t, err)
	assert.Nil(t, got)

	chores, groceries, name := 3, 1, "Home"
	state := chorewatch.ObservedState{LastChoreCount: &chores, LastGroceryCount: &groceries, LastGroupName: &name}
	require.NoError(t, repo.Put(ctx, "dev:grp", state))

	// later changes to the caller's values must not leak into the store
	chores = 99

	got, err = repo.Get(ctx, "dev:grp")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, *got.LastChoreCount)
	assert.Equal(t, "Home", *got.LastGroupName)

	require.NoError(t, repo.Delete(ctx, "dev:grp"))
	got, err = repo.Get(ctx, "dev:grp")
	require.NoError(t, err)
	assert.Nil(t, got)
}
