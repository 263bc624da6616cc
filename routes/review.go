package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/controllers"
	"github.com/homekaro/home-service-api/middleware"
)

// SetupReviewRoutes configures review submission and listing routes
func SetupReviewRoutes(app *fiber.App, database *gorm.DB) {
	ctrl := controllers.NewReviewController(database)

	reviews := app.Group("/api/reviews")

	reviews.Post("/", middleware.Protected(database), ctrl.CreateReview)
	reviews.Get("/worker/:workerId", ctrl.GetWorkerReviews)
}
