package contract

import (
	"context"

	"household-sync-be/internal/entity"
	"household-sync-be/internal/repository/specification"
)

type DeviceSubscriptionRepository interface {
	// Create is idempotent on the (device, group) pair.
	Create(ctx context.Context, sub *entity.DeviceSubscription) error
	Delete(ctx context.Context, groupId, deviceId string) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DeviceSubscription, error)
}
