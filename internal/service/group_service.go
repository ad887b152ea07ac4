package service

import (
	"context"
	"errors"
	"time"

	"household-sync-be/internal/dto"
	"household-sync-be/internal/entity"
	"household-sync-be/internal/repository/specification"
	"household-sync-be/internal/repository/unitofwork"
	"household-sync-be/pkg/chorewatch"
)

var ErrGroupNotFound = errors.New("group not found")

type IGroupService interface {
	Upsert(ctx context.Context, req *dto.UpsertGroupRequest) (*dto.UpsertGroupResponse, error)
	Show(ctx context.Context, id string) (*dto.ShowGroupResponse, error)
	Delete(ctx context.Context, id string) error
}

type groupService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewGroupService(uowFactory unitofwork.RepositoryFactory) IGroupService {
	return &groupService{
		uowFactory: uowFactory,
	}
}

// Upsert replaces the whole group document. Concurrent writers are not
// reconciled; the last one wins.
func (c *groupService) Upsert(ctx context.Context, req *dto.UpsertGroupRequest) (*dto.UpsertGroupResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	existing, err := uow.GroupRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	group := entity.Group{
		Id:        req.Id,
		Name:      req.Name,
		Chores:    req.Chores,
		Groceries: req.Groceries,
		CreatedAt: now,
	}
	if group.Chores == nil {
		group.Chores = []chorewatch.Chore{}
	}
	if group.Groceries == nil {
		group.Groceries = []chorewatch.GroceryItem{}
	}
	if existing != nil {
		group.CreatedAt = existing.CreatedAt
		group.UpdatedAt = &now
	}

	if err := uow.GroupRepository().Upsert(ctx, &group); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.UpsertGroupResponse{
		Id: group.Id,
	}, nil
}

func (c *groupService) Show(ctx context.Context, id string) (*dto.ShowGroupResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	group, err := uow.GroupRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	return &dto.ShowGroupResponse{
		Id:        group.Id,
		Name:      group.Name,
		Chores:    group.Chores,
		Groceries: group.Groceries,
		CreatedAt: group.CreatedAt,
		UpdatedAt: group.UpdatedAt,
	}, nil
}

func (c *groupService) Delete(ctx context.Context, id string) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	return uow.GroupRepository().Delete(ctx, id)
}
