package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/localkart/core-api/controllers"
	"github.com/localkart/core-api/middleware"
	"github.com/localkart/core-api/models"
)

// SetupBookingRoutes configures the booking workflow routes.
func SetupBookingRoutes(api fiber.Router, bc *controllers.BookingController, protected fiber.Handler) {
	bookings := api.Group("/bookings", protected)

	bookings.Post("/", bc.Create)
	bookings.Get("/my-bookings", bc.MyBookings)
	bookings.Get("/provider-bookings", middleware.RequireRole(models.RoleProvider), bc.ProviderBookings)
	bookings.Get("/:id", bc.GetByID)
	bookings.Put("/:id/status", middleware.RequireRole(models.RoleProvider), bc.UpdateStatus)
	bookings.Post("/:id/review", bc.SubmitReview)
	bookings.Get("/:id/messages", bc.Messages)
}
