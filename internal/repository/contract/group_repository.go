package contract

import (
	"context"

	"household-sync-be/internal/entity"
	"household-sync-be/internal/repository/specification"
)

type GroupRepository interface {
	// Upsert replaces the whole document; last write wins.
	Upsert(ctx context.Context, group *entity.Group) error
	Delete(ctx context.Context, id string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Group, error)
}
