package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/controllers"
	"github.com/homekaro/home-service-api/middleware"
	"github.com/homekaro/home-service-api/models"
)

// SetupAdminRoutes configures the admin panel routes. Every route
// requires an authenticated ADMIN user.
func SetupAdminRoutes(app *fiber.App, database *gorm.DB) {
	ctrl := controllers.NewAdminController(database)

	admin := app.Group("/api/admin",
		middleware.Protected(database),
		middleware.RequireRole(models.RoleAdmin),
	)

	admin.Get("/stats", ctrl.GetStats)
	admin.Get("/bookings", ctrl.GetAllBookings)
	admin.Get("/complaints", ctrl.GetAllComplaints)
	admin.Put("/complaints/:id/status", ctrl.UpdateComplaintStatus)
	admin.Get("/users", ctrl.GetUsers)
	admin.Get("/workers", ctrl.GetWorkers)
	admin.Put("/workers/:id/verify", ctrl.VerifyWorker)
	admin.Put("/workers/:id/suspend", ctrl.SuspendWorker)
	admin.Get("/kyc/pending", ctrl.GetPendingKYC)
	admin.Put("/kyc/:workerId/status", ctrl.UpdateKYC)
}
