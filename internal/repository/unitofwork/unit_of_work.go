package unitofwork

import (
	"context"

	"household-sync-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	GroupRepository() contract.GroupRepository
	DeviceSubscriptionRepository() contract.DeviceSubscriptionRepository
}
