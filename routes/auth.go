package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/controllers"
	"github.com/homekaro/home-service-api/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App, database *gorm.DB) {
	ctrl := controllers.NewAuthController(database)

	auth := app.Group("/api/auth")

	// Public routes
	auth.Post("/register", ctrl.Register)
	auth.Post("/login", ctrl.Login)
	auth.Post("/admin/login", ctrl.AdminLogin)

	// Protected routes
	auth.Post("/logout", middleware.Protected(database), ctrl.Logout)
}
