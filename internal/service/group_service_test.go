package service

import (
	"context"
	"testing"

	"household-sync-be/internal/dto"
	"household-sync-be/pkg/chorewatch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupService_UpsertShowDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewGroupService(newMemStore())

	res, err := svc.Upsert(ctx, &dto.UpsertGroupRequest{
		Id:     "g1",
		Name:   "Flat 3B",
		Chores: []chorewatch.Chore{{Id: "c1", Name: "Dishes"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "g1", res.Id)

	shown, err := svc.Show(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "Flat 3B", shown.Name)
	assert.Len(t, shown.Chores, 1)
	assert.NotNil(t, shown.Groceries)
	assert.Nil(t, shown.UpdatedAt)

	created := shown.CreatedAt
	_, err = svc.Upsert(ctx, &dto.UpsertGroupRequest{Id: "g1", Name: "The Nest"})
	require.NoError(t, err)

	shown, err = svc.Show(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "The Nest", shown.Name)
	assert.Empty(t, shown.Chores)
	assert.Equal(t, created, shown.CreatedAt)
	assert.NotNil(t, shown.UpdatedAt)

	require.NoError(t, svc.Delete(ctx, "g1"))
	_, err = svc.Show(ctx, "g1")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}
