package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/localkart/core-api/controllers"
)

// SetupAuthRoutes configures all authentication related routes.
func SetupAuthRoutes(api fiber.Router, ac *controllers.AuthController, protected fiber.Handler) {
	auth := api.Group("/auth")

	// Public routes
	auth.Post("/register", ac.Register)
	auth.Post("/login", ac.Login)

	// Protected routes
	auth.Get("/me", protected, ac.GetMe)
	auth.Put("/me", protected, ac.UpdateMe)
}
