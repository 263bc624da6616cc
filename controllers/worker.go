package controllers

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/models"
)

type WorkerController struct {
	DB *gorm.DB
}

func NewWorkerController(db *gorm.DB) *WorkerController {
	return &WorkerController{DB: db}
}

func roundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}

// GetAllWorkers returns available workers, filterable by profession,
// minimum rating, maximum hourly rate, and verification status.
func (h *WorkerController) GetAllWorkers(c *fiber.Ctx) error {
	query := h.DB.Model(&models.Worker{}).
		Where("is_available = ?", true).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email, phone")
		}).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Reviews.Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Preload("Bookings", "status = ?", models.StatusCompleted)

	if profession := c.Query("profession"); profession != "" {
		query = query.Where("LOWER(profession) LIKE ?", "%"+strings.ToLower(profession)+"%")
	}
	if minRating := c.Query("minRating"); minRating != "" {
		if v, err := strconv.ParseFloat(minRating, 64); err == nil {
			query = query.Where("rating >= ?", v)
		}
	}
	if maxPrice := c.Query("maxPrice"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("hourly_rate <= ?", v)
		}
	}
	if isVerified := c.Query("isVerified"); isVerified != "" {
		query = query.Where("is_verified = ?", isVerified == "true")
	}

	var workers []models.Worker
	if err := query.Order("rating DESC, total_jobs DESC").Find(&workers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// A LIMIT inside the preload would cap the query across all workers,
	// so load everything ordered and keep the five newest per worker.
	for i := range workers {
		if len(workers[i].Reviews) > 5 {
			workers[i].Reviews = workers[i].Reviews[:5]
		}
	}

	return c.JSON(workers)
}

// GetWorker returns a worker's full public profile plus derived stats
func (h *WorkerController) GetWorker(c *fiber.Ctx) error {
	id := c.Params("id")

	var worker models.Worker
	err := h.DB.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email, phone, created_at")
		}).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Reviews.Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Preload("Bookings", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(10)
		}).
		Preload("Bookings.Service").
		Preload("Bookings.Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		First(&worker, id).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Worker not found",
		})
	}

	completedJobs := 0
	for _, b := range worker.Bookings {
		if b.Status == models.StatusCompleted {
			completedJobs++
		}
	}

	avgRating := 0.0
	if len(worker.Reviews) > 0 {
		sum := 0
		for _, r := range worker.Reviews {
			sum += r.Rating
		}
		avgRating = float64(sum) / float64(len(worker.Reviews))
	}

	type workerWithStats struct {
		models.Worker
		Stats fiber.Map `json:"stats"`
	}

	return c.JSON(workerWithStats{
		Worker: worker,
		Stats: fiber.Map{
			"completed_jobs": completedJobs,
			"avg_rating":     roundRating(avgRating),
			"total_reviews":  len(worker.Reviews),
		},
	})
}

// GetAvailableJobs lists the open job pool: PENDING bookings with no
// assigned worker, optionally filtered by service category.
func (h *WorkerController) GetAvailableJobs(c *fiber.Ctx) error {
	query := h.DB.
		Preload("Service").
		Preload("Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, phone")
		}).
		Where("bookings.status = ? AND bookings.worker_id IS NULL", models.StatusPending)

	if profession := c.Query("profession"); profession != "" {
		query = query.
			Joins("JOIN services ON services.id = bookings.service_id").
			Where("LOWER(services.category) LIKE ?", "%"+strings.ToLower(profession)+"%")
	}

	var jobs []models.Booking
	if err := query.Order("bookings.created_at DESC").Find(&jobs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(jobs)
}

// SubmitKYC stores the worker's document references and moves the KYC
// workflow to PENDING.
func (h *WorkerController) SubmitKYC(c *fiber.Ctx) error {
	type KYCInput struct {
		UserID       uint   `json:"user_id"`
		AadharCard   string `json:"aadhar_card"`
		PanCard      string `json:"pan_card"`
		ProfilePhoto string `json:"profile_photo"`
	}

	input := new(KYCInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var worker models.Worker
	if h.DB.Where("user_id = ?", input.UserID).First(&worker).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Worker profile not found",
		})
	}

	updates := map[string]interface{}{
		"kyc_status":    models.KYCPending,
		"aadhar_card":   input.AadharCard,
		"pan_card":      input.PanCard,
		"profile_photo": input.ProfilePhoto,
	}
	if err := h.DB.Model(&worker).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "KYC documents submitted successfully",
		"worker":  worker,
	})
}

// UpdateKYCStatus sets a worker's KYC status by user id. Verification
// derives isVerified from the decision.
func (h *WorkerController) UpdateKYCStatus(c *fiber.Ctx) error {
	type KYCStatusInput struct {
		UserID    uint             `json:"user_id"`
		KYCStatus models.KYCStatus `json:"kyc_status"`
	}

	input := new(KYCStatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var worker models.Worker
	if h.DB.Where("user_id = ?", input.UserID).First(&worker).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Worker profile not found",
		})
	}

	updates := map[string]interface{}{
		"kyc_status": input.KYCStatus,
	}
	if input.KYCStatus == models.KYCVerified {
		updates["is_verified"] = true
	}
	if err := h.DB.Model(&worker).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.DB.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email")
	}).First(&worker, worker.ID)

	return c.JSON(worker)
}

// GetMyProfile returns the calling worker's own profile with earnings stats
func (h *WorkerController) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var worker models.Worker
	err := h.DB.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email, phone, created_at")
		}).
		Preload("Bookings", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Bookings.Service").
		Preload("Bookings.Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Reviews.Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Where("user_id = ?", userID).
		First(&worker).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Worker profile not found",
		})
	}

	completedJobs := 0
	totalEarnings := 0.0
	for _, b := range worker.Bookings {
		if b.Status == models.StatusCompleted {
			completedJobs++
			totalEarnings += b.TotalAmount
		}
	}

	avgRating := 0.0
	if len(worker.Reviews) > 0 {
		sum := 0
		for _, r := range worker.Reviews {
			sum += r.Rating
		}
		avgRating = float64(sum) / float64(len(worker.Reviews))
	}

	type workerWithStats struct {
		models.Worker
		Stats fiber.Map `json:"stats"`
	}

	return c.JSON(workerWithStats{
		Worker: worker,
		Stats: fiber.Map{
			"completed_jobs": completedJobs,
			"total_earnings": totalEarnings,
			"avg_rating":     roundRating(avgRating),
			"total_reviews":  len(worker.Reviews),
		},
	})
}

// UpdateMyProfile is the worker's self-service profile update
func (h *WorkerController) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type ProfileInput struct {
		Profession   *string        `json:"profession"`
		Experience   *int           `json:"experience"`
		HourlyRate   *float64       `json:"hourly_rate"`
		Skills       datatypes.JSON `json:"skills"`
		Portfolio    datatypes.JSON `json:"portfolio"`
		Availability datatypes.JSON `json:"availability"`
	}

	input := new(ProfileInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var worker models.Worker
	if h.DB.Where("user_id = ?", userID).First(&worker).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Worker profile not found",
		})
	}

	updates := map[string]interface{}{}
	if input.Profession != nil {
		updates["profession"] = *input.Profession
	}
	if input.Experience != nil {
		updates["experience"] = *input.Experience
	}
	if input.HourlyRate != nil {
		updates["hourly_rate"] = *input.HourlyRate
	}
	if input.Skills != nil {
		updates["skills"] = input.Skills
	}
	if input.Portfolio != nil {
		updates["portfolio"] = input.Portfolio
	}
	if input.Availability != nil {
		updates["availability"] = input.Availability
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&worker).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	h.DB.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email, phone")
	}).First(&worker, worker.ID)

	return c.JSON(worker)
}
