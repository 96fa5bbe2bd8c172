package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serviceconnect/api/internal/api/dto"
	"github.com/serviceconnect/api/internal/api/response"
	"github.com/serviceconnect/api/internal/service"
)

// NotificationsHandler serves the caller's notification feed.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notifications *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// List handles GET /api/notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	limit, offset := parsePage(c)
	unread := parseBoolQuery(c, "unread")
	items, err := h.notifications.List(c.UserContext(), caller, unread != nil && *unread, limit, offset)
	if err != nil {
		return err
	}
	return response.Success(c, mapSlice(items, notificationResponse))
}

// MarkRead handles PUT /api/notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "Notification")
	if err != nil {
		return err
	}
	notification, err := h.notifications.MarkRead(c.UserContext(), caller, id)
	if err != nil {
		return err
	}
	return response.Success(c, notificationResponse(notification))
}

// MarkAllRead handles PUT /api/notifications/read-all.
func (h *NotificationsHandler) MarkAllRead(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	updated, err := h.notifications.MarkAllRead(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return response.Success(c, dto.MarkAllReadResponse{Updated: updated})
}

// Delete handles DELETE /api/notifications/:id.
func (h *NotificationsHandler) Delete(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "Notification")
	if err != nil {
		return err
	}
	if err := h.notifications.Delete(c.UserContext(), caller, id); err != nil {
		return err
	}
	return response.Message(c, "Notification deleted")
}
