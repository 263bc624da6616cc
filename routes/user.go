package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/controllers"
	"github.com/homekaro/home-service-api/middleware"
)

// SetupUserRoutes configures profile and per-user dashboard routes
func SetupUserRoutes(app *fiber.App, database *gorm.DB) {
	ctrl := controllers.NewUserController(database)

	users := app.Group("/api/users", middleware.Protected(database))

	users.Get("/profile", ctrl.GetProfile)
	users.Put("/profile", ctrl.UpdateProfile)
	users.Post("/addresses", ctrl.AddAddress)
	users.Get("/dashboard-stats", ctrl.GetDashboardStats)
}
