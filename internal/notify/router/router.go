package router

import (
	"maestro_marketplace/internal/notify/api/handlers"
	"maestro_marketplace/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes register notification routes
func RegisterRoutes(r *fiber.App, notificationHandler *handlers.NotificationHandler) {
	r.Use(middlewares.JWTMiddleware())

	r.Get("/notifications", notificationHandler.ListUnseen)
	r.Post("/notifications/seen", notificationHandler.MarkSeen)
}
