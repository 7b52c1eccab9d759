package handlers

import (
	"net/http"

	"maestro_marketplace/internal/chat/app"
	"maestro_marketplace/pkg/logger"
	"maestro_marketplace/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MessageHandler REST surface of the chat service. Text sends normally go
// over the websocket; this surface carries history fetches, attachment
// uploads, and read acks from clients without a live connection.
type MessageHandler struct {
	MessageUC *app.MessageUseCase
}

type sendMessageRequest struct {
	ReceiverID string `json:"receiver_id"`
	Text       string `json:"text"`
}

type readRequest struct {
	MessageIDs []string `json:"message_ids"`
}

func memberID(c *fiber.Ctx) string {
	id, _ := c.Locals(middlewares.TokenMemberID).(string)
	return id
}

// GetHistory godoc
// @Summary Full message history of the authenticated member
// @Tags chat
// @Produce json
// @Success 200 {array} domain.HistoryRecord
// @Router /messages [get]
func (h *MessageHandler) GetHistory(c *fiber.Ctx) error {
	records, err := h.MessageUC.GetHistory(c.Context(), memberID(c))
	if err != nil {
		logger.Log.Error("history fetch failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "history unavailable"})
	}
	return c.JSON(records)
}

// SendMessage godoc
// @Summary Send a message, optionally with an image attachment
// @Tags chat
// @Accept mpfd
// @Produce json
// @Param receiver_id formData string true "receiver member id"
// @Param text formData string false "message text"
// @Param image formData file false "image attachment"
// @Success 200 {object} map[string]interface{}
// @Router /messages [post]
func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	sender := memberID(c)

	fileHeader, fileErr := c.FormFile("image")
	if fileErr == nil {
		receiverID := c.FormValue("receiver_id")
		text := c.FormValue("text")

		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "unreadable attachment"})
		}
		defer file.Close()

		msg, imageURL, err := h.MessageUC.SendImageMessage(
			c.Context(), sender, receiverID, text,
			fileHeader.Filename, file, fileHeader.Size,
			fileHeader.Header.Get("Content-Type"),
		)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{
			"message_id": msg.ID,
			"created_at": msg.CreatedAt,
			"image":      imageURL,
		})
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "bad request"})
	}
	msg, err := h.MessageUC.SendMessage(c.Context(), sender, req.ReceiverID, req.Text)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"message_id": msg.ID,
		"created_at": msg.CreatedAt,
	})
}

// UnreadCount godoc
// @Summary Count of unread messages addressed to the authenticated member
// @Tags chat
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /messages/unread_count [get]
func (h *MessageHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.MessageUC.UnreadCount(c.Context(), memberID(c))
	if err != nil {
		logger.Log.Error("unread count failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "count unavailable"})
	}
	return c.JSON(fiber.Map{"unread_count": count})
}

// MarkRead godoc
// @Summary Mark incoming messages as read
// @Tags chat
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /messages/read [post]
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	var req readRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "bad request"})
	}
	if err := h.MessageUC.AckRead(c.Context(), memberID(c), req.MessageIDs); err != nil {
		logger.Log.Error("read ack failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "ack failed"})
	}
	return c.JSON(fiber.Map{"acked": len(req.MessageIDs)})
}
