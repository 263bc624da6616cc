package db

import (
	"fmt"
	"log"

	"github.com/homekaro/home-service-api/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Address{},
		&models.Worker{},
		&models.Service{},
		&models.Booking{},
		&models.Review{},
		&models.Complaint{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
