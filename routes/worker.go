package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/controllers"
	"github.com/homekaro/home-service-api/middleware"
)

// SetupWorkerRoutes configures worker discovery, job feed and KYC routes.
// Static paths register before /:id so they are not shadowed.
func SetupWorkerRoutes(app *fiber.App, database *gorm.DB) {
	ctrl := controllers.NewWorkerController(database)

	workers := app.Group("/api/workers")

	workers.Get("/", ctrl.GetAllWorkers)
	workers.Get("/jobs/available", ctrl.GetAvailableJobs)
	workers.Put("/kyc/status", ctrl.UpdateKYCStatus)
	workers.Post("/kyc/submit", ctrl.SubmitKYC)
	workers.Get("/profile/me", middleware.Protected(database), ctrl.GetMyProfile)
	workers.Put("/profile/me", middleware.Protected(database), ctrl.UpdateMyProfile)
	workers.Get("/:id", ctrl.GetWorker)
}
