package main

import (
	"maestro_marketplace/internal/matching/router"

	"github.com/gofiber/fiber/v2"
)

// Services are split into their own binaries under cmd/; this entry point only
// exists so swag has a root package to scan.
// swag init output ./docs
func main() {
	app := fiber.New()

	router.RegisterRoutes(app, nil)
}
