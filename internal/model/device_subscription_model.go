package model

import (
	"time"

	"github.com/google/uuid"
)

// DeviceSubscription registers a device for periodic polling of one group.
type DeviceSubscription struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GroupId   string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_device_subscriptions_pair,priority:2"`
	DeviceId  string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_device_subscriptions_pair,priority:1"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (DeviceSubscription) TableName() string {
	return "device_subscriptions"
}
