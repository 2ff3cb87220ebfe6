package server

import (
	"aurasocial/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications/:address
// @Summary List an inbox, newest first
// @Tags notifications
// @Produce json
// @Param address path string true "Wallet address"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Param unreadOnly query bool false "Only unread"
// @Success 200 {array} models.NotificationView
// @Router /notifications/{address} [get]
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	items, err := s.notificationService.List(c.UserContext(), service.ListNotificationsInput{
		Address:    c.Params("address"),
		UnreadOnly: c.QueryBool("unreadOnly", false),
		Page:       parsePagination(c),
	})
	if err != nil {
		return fail(c, err, "Failed to fetch notifications")
	}
	return c.JSON(items)
}

// GetUnreadCount handles GET /api/notifications/:address/count
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	n, err := s.notificationService.UnreadCount(c.UserContext(), c.Params("address"))
	if err != nil {
		return fail(c, err, "Failed to fetch unread count")
	}
	return c.JSON(fiber.Map{"count": n})
}

// MarkNotificationRead handles PUT /api/notifications/:id/read
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return fail(c, err, "Failed to mark as read")
	}
	if err := s.notificationService.MarkRead(c.UserContext(), id); err != nil {
		return fail(c, err, "Failed to mark as read")
	}
	return success(c, nil)
}

// MarkAllNotificationsRead handles PUT /api/notifications/:address/read-all
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	if err := s.notificationService.MarkAllRead(c.UserContext(), c.Params("address")); err != nil {
		return fail(c, err, "Failed to mark all as read")
	}
	return success(c, nil)
}

// DeleteNotification handles DELETE /api/notifications/:id
func (s *Server) DeleteNotification(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return fail(c, err, "Failed to delete notification")
	}
	if err := s.notificationService.Delete(c.UserContext(), id); err != nil {
		return fail(c, err, "Failed to delete notification")
	}
	return success(c, nil)
}
