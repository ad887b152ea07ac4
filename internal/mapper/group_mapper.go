package mapper

import (
	"time"

	"household-sync-be/internal/entity"
	"household-sync-be/internal/model"
	"household-sync-be/pkg/chorewatch"

	"gorm.io/datatypes"
)

type GroupMapper struct{}

func NewGroupMapper() *GroupMapper {
	return &GroupMapper{}
}

func (m *GroupMapper) ToEntity(g *model.Group) *entity.Group {
	if g == nil {
		return nil
	}

	var updatedAt *time.Time
	if !g.UpdatedAt.IsZero() {
		t := g.UpdatedAt
		updatedAt = &t
	}

	chores := []chorewatch.Chore(g.Chores)
	if chores == nil {
		chores = []chorewatch.Chore{}
	}
	groceries := []chorewatch.GroceryItem(g.Groceries)
	if groceries == nil {
		groceries = []chorewatch.GroceryItem{}
	}

	return &entity.Group{
		Id:        g.Id,
		Name:      g.Name,
		Chores:    chores,
		Groceries: groceries,
		CreatedAt: g.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *GroupMapper) ToModel(g *entity.Group) *model.Group {
	if g == nil {
		return nil
	}

	var updatedAt time.Time
	if g.UpdatedAt != nil {
		updatedAt = *g.UpdatedAt
	}

	return &model.Group{
		Id:        g.Id,
		Name:      g.Name,
		Chores:    datatypes.JSONSlice[chorewatch.Chore](g.Chores),
		Groceries: datatypes.JSONSlice[chorewatch.GroceryItem](g.Groceries),
		CreatedAt: g.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

// ToSnapshot is the view the chore watcher diffs against.
func (m *GroupMapper) ToSnapshot(g *entity.Group) chorewatch.Snapshot {
	return chorewatch.Snapshot{
		GroupName: g.Name,
		Chores:    g.Chores,
		Groceries: g.Groceries,
	}
}
