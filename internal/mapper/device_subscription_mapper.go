package mapper

import (
	"household-sync-be/internal/entity"
	"household-sync-be/internal/model"
)

type DeviceSubscriptionMapper struct{}

func NewDeviceSubscriptionMapper() *DeviceSubscriptionMapper {
	return &DeviceSubscriptionMapper{}
}

func (m *DeviceSubscriptionMapper) ToEntity(s *model.DeviceSubscription) *entity.DeviceSubscription {
	if s == nil {
		return nil
	}
	return &entity.DeviceSubscription{
		Id:        s.Id,
		GroupId:   s.GroupId,
		DeviceId:  s.DeviceId,
		CreatedAt: s.CreatedAt,
	}
}

func (m *DeviceSubscriptionMapper) ToModel(s *entity.DeviceSubscription) *model.DeviceSubscription {
	if s == nil {
		return nil
	}
	return &model.DeviceSubscription{
		Id:        s.Id,
		GroupId:   s.GroupId,
		DeviceId:  s.DeviceId,
		CreatedAt: s.CreatedAt,
	}
}

func (m *DeviceSubscriptionMapper) ToEntities(subs []*model.DeviceSubscription) []*entity.DeviceSubscription {
	entities := make([]*entity.DeviceSubscription, len(subs))
	for i, s := range subs {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
