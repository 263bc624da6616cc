package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/controllers"
	"github.com/homekaro/home-service-api/middleware"
	"github.com/homekaro/home-service-api/models"
)

// SetupBookingRoutes configures the booking lifecycle routes.
// Static paths register before /:id so they are not shadowed.
func SetupBookingRoutes(app *fiber.App, database *gorm.DB) {
	ctrl := controllers.NewBookingController(database)

	bookings := app.Group("/api/bookings", middleware.Protected(database))

	bookings.Post("/", ctrl.CreateBooking)
	bookings.Get("/my", ctrl.GetMyBookings)
	bookings.Get("/worker", middleware.RequireRole(models.RoleWorker), ctrl.GetWorkerBookings)
	bookings.Put("/:id/accept", middleware.RequireRole(models.RoleWorker), ctrl.AcceptBooking)
	bookings.Put("/:id/status", ctrl.UpdateBookingStatus)
	bookings.Get("/:id", ctrl.GetBooking)
}
