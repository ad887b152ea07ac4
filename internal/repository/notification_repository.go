package repository

import (
	"context"
	"errors"

	"household-sync-be/internal/model"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *model.Notification) error
	GetNotificationsByDeviceID(ctx context.Context, deviceID string, limit, offset int) ([]model.Notification, int64, error)
	GetUnreadCount(ctx context.Context, deviceID string) (int64, error)
	MarkAsRead(ctx context.Context, notificationID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, deviceID string) error
}
