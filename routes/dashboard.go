package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/controllers"
	"github.com/homekaro/home-service-api/middleware"
	"github.com/homekaro/home-service-api/models"
)

// SetupDashboardRoutes configures the role-aware dashboard, analytics
// and notification routes.
func SetupDashboardRoutes(app *fiber.App, database *gorm.DB) {
	dashCtrl := controllers.NewDashboardController(database)
	analyticsCtrl := controllers.NewAnalyticsController(database)
	notifCtrl := controllers.NewNotificationController(database)

	dashboard := app.Group("/api/dashboard", middleware.Protected(database))
	dashboard.Get("/", dashCtrl.GetDashboard)

	analytics := app.Group("/api/analytics", middleware.Protected(database))
	analytics.Get("/overview", middleware.RequireRole(models.RoleAdmin), analyticsCtrl.GetOverview)
	analytics.Get("/worker", middleware.RequireRole(models.RoleWorker), analyticsCtrl.GetWorkerAnalytics)

	notifications := app.Group("/api/notifications", middleware.Protected(database))
	notifications.Get("/", notifCtrl.GetNotifications)
	notifications.Put("/:id/read", notifCtrl.MarkAsRead)
}
