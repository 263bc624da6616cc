package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/homekaro/home-service-api/cron"
	"github.com/homekaro/home-service-api/db"
	"github.com/homekaro/home-service-api/redis"
	"github.com/homekaro/home-service-api/routes"
	"github.com/homekaro/home-service-api/utils"
)

func main() {
	utils.InitLogger()

	db.Migrate()
	redis.InitRedis()

	database := db.GetDB()
	cron.StartReminderJobs(database)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "OK",
			"message": "Server is running",
		})
	})

	routes.SetupAuthRoutes(app, database)
	routes.SetupUserRoutes(app, database)
	routes.SetupServiceRoutes(app, database)
	routes.SetupBookingRoutes(app, database)
	routes.SetupWorkerRoutes(app, database)
	routes.SetupReviewRoutes(app, database)
	routes.SetupAddressRoutes(app, database)
	routes.SetupComplaintRoutes(app, database)
	routes.SetupAdminRoutes(app, database)
	routes.SetupDashboardRoutes(app, database)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	utils.InfoLogger.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
