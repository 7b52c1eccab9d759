package handlers

import (
	"net/http"

	"maestro_marketplace/internal/notify/repository"
	"maestro_marketplace/pkg/logger"
	"maestro_marketplace/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// NotificationHandler fetch/ack surface over the stored notifications. A
// client coming back online pulls its unseen backlog here and acknowledges
// it once rendered.
type NotificationHandler struct {
	NotifyRepo repository.NotificationRepo
}

func memberID(c *fiber.Ctx) string {
	id, _ := c.Locals(middlewares.TokenMemberID).(string)
	return id
}

// ListUnseen godoc
// @Summary Unseen notifications of the authenticated member, oldest first
// @Tags notify
// @Produce json
// @Success 200 {array} domain.Notification
// @Router /notifications [get]
func (h *NotificationHandler) ListUnseen(c *fiber.Ctx) error {
	notifications, err := h.NotifyRepo.FindUnseenByReceiver(memberID(c))
	if err != nil {
		logger.Log.Error("notification fetch failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "notifications unavailable"})
	}
	return c.JSON(notifications)
}

// MarkSeen godoc
// @Summary Mark every unseen notification of the authenticated member as seen
// @Tags notify
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /notifications/seen [post]
func (h *NotificationHandler) MarkSeen(c *fiber.Ctx) error {
	if err := h.NotifyRepo.MarkSeen(memberID(c)); err != nil {
		logger.Log.Error("notification seen ack failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "ack failed"})
	}
	return c.JSON(fiber.Map{"seen": true})
}
