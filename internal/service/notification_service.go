package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"household-sync-be/internal/constant"
	"household-sync-be/internal/model"
	"household-sync-be/internal/pkg/logger"
	"household-sync-be/internal/repository"
	"household-sync-be/pkg/chorewatch"
	"household-sync-be/pkg/events"
	pktNats "household-sync-be/pkg/nats" // Renamed to avoid collision

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(deviceID string, notification model.Notification)
}

// EventPublisher is the part of the NATS publisher the bus dispatcher needs.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type NotificationService struct {
	repo       repository.NotificationRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(repo repository.NotificationRepository, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus. Without a subscriber the service
// only works as a direct dispatcher.
func (s *NotificationService) Start() error {
	if s.subscriber == nil {
		s.logger.Warn("NotificationService", "No event bus subscriber, notifications are dispatched directly", nil)
		return nil
	}

	if err := s.subscriber.Subscribe(events.Subject(">"), constant.NotificationDurableName, s.handleEvent); err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err.Error()})
		return err
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
	return nil
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	target, evt, err := fromBusEvent(event)
	if err != nil {
		// Nothing to redeliver for a payload we cannot understand
		s.logger.Warn("NotificationService", "Dropping unrecognised event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
		return nil
	}
	return s.Dispatch(ctx, target, evt)
}

// Dispatch renders, stores and pushes a notification for one change.
func (s *NotificationService) Dispatch(ctx context.Context, target chorewatch.Target, evt chorewatch.Event) error {
	notif := s.buildNotification(target, evt)

	if err := s.repo.CreateNotification(ctx, &notif); err != nil {
		s.logger.Error("NotificationService", fmt.Sprintf("Error saving notification for device %s", target.DeviceId), map[string]interface{}{"error": err.Error()})
		return err
	}

	if s.delivery != nil {
		s.delivery.Send(target.DeviceId, notif)
	}

	s.logger.Info("NotificationService", "Notification delivered", map[string]interface{}{
		"device_id": target.DeviceId,
		"type":      notif.TypeCode,
	})
	return nil
}

func (s *NotificationService) buildNotification(target chorewatch.Target, evt chorewatch.Event) model.Notification {
	var title, msg string
	switch evt.Kind {
	case chorewatch.EventNewChores:
		title, msg = constant.NotificationTitleChoresAdded, constant.NotificationTemplateChoresAdded
	case chorewatch.EventNewGroceries:
		title, msg = constant.NotificationTitleGroceriesAdded, constant.NotificationTemplateGroceriesAdded
	case chorewatch.EventGroupRenamed:
		title, msg = constant.NotificationTitleGroupRenamed, constant.NotificationTemplateGroupRenamed
	}

	payload := map[string]interface{}{
		"group_id": target.GroupId,
		"count":    evt.Count,
		"old_name": evt.OldName,
		"new_name": evt.NewName,
	}
	for k, v := range payload {
		placeholder := fmt.Sprintf("{%s}", k)
		msg = strings.ReplaceAll(msg, placeholder, fmt.Sprintf("%v", v))
	}

	metaJSON, _ := json.Marshal(evt)

	return model.Notification{
		ID:        uuid.New(),
		DeviceID:  target.DeviceId,
		GroupID:   target.GroupId,
		TypeCode:  string(evt.Kind),
		Title:     title,
		Message:   msg,
		Metadata:  datatypes.JSON(metaJSON),
		CreatedAt: time.Now(),
		IsRead:    false,
	}
}

// GetNotifications fetches notifications for a device.
func (s *NotificationService) GetNotifications(ctx context.Context, deviceID string, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByDeviceID(ctx, deviceID, limit, offset)
}

// GetUnreadCount fetches unread count.
func (s *NotificationService) GetUnreadCount(ctx context.Context, deviceID string) (int64, error) {
	return s.repo.GetUnreadCount(ctx, deviceID)
}

// MarkAsRead marks a notification as read.
func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read for a device.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, deviceID string) error {
	return s.repo.MarkAllAsRead(ctx, deviceID)
}

type busDispatcher struct {
	publisher EventPublisher
}

// NewBusDispatcher publishes changes to the event bus; NotificationService
// picks them up from there.
func NewBusDispatcher(publisher EventPublisher) NotificationDispatcher {
	return &busDispatcher{publisher: publisher}
}

func (d *busDispatcher) Dispatch(ctx context.Context, target chorewatch.Target, evt chorewatch.Event) error {
	return d.publisher.Publish(ctx, toBusEvent(target, evt))
}
