package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/controllers"
	"github.com/homekaro/home-service-api/middleware"
	"github.com/homekaro/home-service-api/models"
)

// SetupComplaintRoutes configures the customer complaint routes
func SetupComplaintRoutes(app *fiber.App, database *gorm.DB) {
	ctrl := controllers.NewComplaintController(database)

	complaints := app.Group("/api/complaints", middleware.Protected(database))

	complaints.Post("/", middleware.RequireRole(models.RoleCustomer), ctrl.CreateComplaint)
	complaints.Get("/my", middleware.RequireRole(models.RoleCustomer), ctrl.GetMyComplaints)
	complaints.Get("/:id", ctrl.GetComplaint)
}
