package implementation

import (
	"context"

	"household-sync-be/internal/entity"
	"household-sync-be/internal/mapper"
	"household-sync-be/internal/model"
	"household-sync-be/internal/repository/contract"
	"household-sync-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeviceSubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DeviceSubscriptionMapper
}

func NewDeviceSubscriptionRepository(db *gorm.DB) contract.DeviceSubscriptionRepository {
	return &DeviceSubscriptionRepositoryImpl{
		db:     db,
		mapper: mapper.NewDeviceSubscriptionMapper(),
	}
}

func (r *DeviceSubscriptionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DeviceSubscriptionRepositoryImpl) Create(ctx context.Context, sub *entity.DeviceSubscription) error {
	if sub.Id == uuid.Nil {
		sub.Id = uuid.New()
	}
	m := r.mapper.ToModel(sub)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "device_id"}, {Name: "group_id"}},
			DoNothing: true,
		}).
		Create(m).Error
}

func (r *DeviceSubscriptionRepositoryImpl) Delete(ctx context.Context, groupId, deviceId string) error {
	return r.db.WithContext(ctx).
		Where("group_id = ? AND device_id = ?", groupId, deviceId).
		Delete(&model.DeviceSubscription{}).Error
}

func (r *DeviceSubscriptionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DeviceSubscription, error) {
	var models []*model.DeviceSubscription
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
