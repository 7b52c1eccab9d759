package router

import (
	"context"

	"maestro_marketplace/internal/chat/api/handlers"
	"maestro_marketplace/internal/chat/app"
	"maestro_marketplace/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes register chat routes
func RegisterRoutes(r *fiber.App, chatWebsocket *app.ChatWebsocketHandler, messageHandler *handlers.MessageHandler) {
	r.Use(middlewares.JWTMiddleware())

	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		chatWebsocket.HandleConnection(context.Background(), c)
	}))

	r.Get("/messages", messageHandler.GetHistory)
	r.Get("/messages/unread_count", messageHandler.UnreadCount)
	r.Post("/messages", messageHandler.SendMessage)
	r.Post("/messages/read", messageHandler.MarkRead)
}
