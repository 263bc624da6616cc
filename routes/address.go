package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/controllers"
	"github.com/homekaro/home-service-api/middleware"
	"github.com/homekaro/home-service-api/models"
)

// SetupAddressRoutes configures the customer address book routes
func SetupAddressRoutes(app *fiber.App, database *gorm.DB) {
	ctrl := controllers.NewAddressController(database)

	addresses := app.Group("/api/addresses",
		middleware.Protected(database),
		middleware.RequireRole(models.RoleCustomer),
	)

	addresses.Post("/", ctrl.CreateAddress)
	addresses.Get("/", ctrl.GetAddresses)
	addresses.Put("/:id", ctrl.UpdateAddress)
	addresses.Delete("/:id", ctrl.DeleteAddress)
	addresses.Put("/:id/default", ctrl.SetDefaultAddress)
}
