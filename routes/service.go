package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/controllers"
)

// SetupServiceRoutes configures the service catalog routes
func SetupServiceRoutes(app *fiber.App, database *gorm.DB) {
	ctrl := controllers.NewServiceController(database)

	services := app.Group("/api/services")

	services.Get("/", ctrl.GetAllServices)
	services.Post("/", ctrl.CreateService)
	services.Get("/:id", ctrl.GetService)
}
