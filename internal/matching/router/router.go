package router

import (
	"maestro_marketplace/internal/matching/api/handlers"
	"maestro_marketplace/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// RegisterRoutes register matching routes
// @title Maestro Matching Service API
// @version 1.0
// @description Specialist/task search and task lifecycle
// @host localhost:8082
// @BasePath /
func RegisterRoutes(app *fiber.App, matchingHandler *handlers.MatchingHandler) {
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Post("/analyze", matchingHandler.Analyze)
	app.Post("/search/specialists", matchingHandler.SearchSpecialists)
	app.Post("/search/tasks", matchingHandler.SearchTasks)
	app.Get("/tasks", matchingHandler.ListOpenTasks)
	app.Get("/tasks/:id/responses", matchingHandler.ListResponses)

	app.Use(middlewares.JWTMiddleware())
	app.Post("/tasks", matchingHandler.CreateTask)
	app.Post("/tasks/:id/responses", matchingHandler.RespondToTask)
	app.Post("/tasks/:id/assign", matchingHandler.AssignSpecialist)
}
