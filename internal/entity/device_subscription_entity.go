package entity

import (
	"time"

	"github.com/google/uuid"
)

type DeviceSubscription struct {
	Id        uuid.UUID
	GroupId   string
	DeviceId  string
	CreatedAt time.Time
}
