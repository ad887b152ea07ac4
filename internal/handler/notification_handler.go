package handler

import (
	"errors"

	"household-sync-be/internal/pkg/logger"
	"household-sync-be/internal/pkg/serverutils"
	"household-sync-be/internal/repository"
	"household-sync-be/internal/service"
	internalWS "household-sync-be/internal/websocket"
	"household-sync-be/pkg/chorewatch"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	service    *service.NotificationService
	dispatcher service.NotificationDispatcher
	hub        *internalWS.Hub
	logger     logger.ILogger
}

func NewNotificationHandler(service *service.NotificationService, dispatcher service.NotificationDispatcher, hub *internalWS.Hub, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		service:    service,
		dispatcher: dispatcher,
		hub:        hub,
		logger:     log,
	}
}

func deviceID(c *fiber.Ctx) (string, error) {
	id := c.Query("device_id")
	if id == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "device_id is required")
	}
	return id, nil
}

// ServeWs upgrades the request and streams the device's notifications.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	id, err := deviceID(c)
	if err != nil {
		return err
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("NotificationHandler", "Starting WebSocket session", map[string]interface{}{"device_id": id})
			internalWS.ServeWs(h.hub, conn, id)
			h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"device_id": id})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// GetNotifications returns the device's notification history, newest first.
func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	id, err := deviceID(c)
	if err != nil {
		return err
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}

	notifications, total, err := h.service.GetNotifications(c.UserContext(), id, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data":  notifications,
		"total": total,
		"page":  offset/limit + 1,
		"limit": limit,
	})
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	id, err := deviceID(c)
	if err != nil {
		return err
	}

	count, err := h.service.GetUnreadCount(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"count": count})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}

	if err := h.service.MarkAsRead(c.UserContext(), id); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	id, err := deviceID(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkAllAsRead(c.UserContext(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}

// DebugTriggerEvent pushes a synthetic change through the normal dispatch path.
func (h *NotificationHandler) DebugTriggerEvent(c *fiber.Ctx) error {
	type Request struct {
		DeviceId string `json:"device_id" validate:"required"`
		GroupId  string `json:"group_id" validate:"required"`
		Kind     string `json:"kind" validate:"required,oneof=CHORES_ADDED GROCERIES_ADDED GROUP_RENAMED"`
		Count    int    `json:"count"`
		OldName  string `json:"old_name"`
		NewName  string `json:"new_name"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if req.Count <= 0 {
		req.Count = 1
	}

	var evt chorewatch.Event
	switch chorewatch.EventKind(req.Kind) {
	case chorewatch.EventNewChores:
		evt = chorewatch.NewChores(req.Count)
	case chorewatch.EventNewGroceries:
		evt = chorewatch.NewGroceries(req.Count)
	default:
		evt = chorewatch.GroupRenamed(req.OldName, req.NewName)
	}

	target := chorewatch.Target{GroupId: req.GroupId, DeviceId: req.DeviceId}
	if err := h.dispatcher.Dispatch(c.UserContext(), target, evt); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"status": "Event Dispatched", "event": evt})
}

func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notif := router.Group("/notifications")
	notif.Get("/", h.GetNotifications)
	notif.Get("/unread-count", h.GetUnreadCount)
	notif.Patch("/read-all", h.MarkAllAsRead)
	notif.Patch("/:id/read", h.MarkAsRead)

	debug := router.Group("/debug")
	debug.Post("/trigger-notification", h.DebugTriggerEvent)

	router.Get("/ws", h.ServeWs)
}
