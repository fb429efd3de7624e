package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/localkart/core-api/controllers"
	"github.com/localkart/core-api/middleware"
	"github.com/localkart/core-api/models"
)

// SetupProviderRoutes configures all provider directory routes.
func SetupProviderRoutes(api fiber.Router, pc *controllers.ProviderController, protected fiber.Handler) {
	providers := api.Group("/providers")

	providers.Post("/register", protected, middleware.RequireRole(models.RoleCustomer), pc.Register)
	providers.Get("/profile", protected, middleware.RequireRole(models.RoleProvider), pc.GetProfile)
	providers.Put("/profile", protected, middleware.RequireRole(models.RoleProvider), pc.UpdateProfile)
	providers.Post("/portfolio", protected, middleware.RequireRole(models.RoleProvider), pc.UploadPortfolio)

	// Public routes
	providers.Get("/search", pc.Search)
	providers.Get("/:id", pc.GetByID)
}
