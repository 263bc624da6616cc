package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/models"
)

type ReviewController struct {
	DB *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

// CreateReview inserts a review and recomputes the worker's cached rating
// as the unweighted mean over the full review set. Insert and recompute
// share one transaction so a concurrent review can't drop the update.
func (h *ReviewController) CreateReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type ReviewInput struct {
		WorkerID  uint   `json:"worker_id"`
		BookingID *uint  `json:"booking_id"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}

	input := new(ReviewInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review data",
		})
	}

	if input.Rating < 1 || input.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Rating must be between 1 and 5",
		})
	}
	if len(input.Comment) > 500 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Comment too long",
		})
	}

	var worker models.Worker
	if h.DB.First(&worker, input.WorkerID).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Worker not found",
		})
	}

	review := models.Review{
		CustomerID: userID,
		WorkerID:   input.WorkerID,
		BookingID:  input.BookingID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		var avg float64
		if err := tx.Model(&models.Review{}).
			Where("worker_id = ?", input.WorkerID).
			Select("AVG(rating)").
			Scan(&avg).Error; err != nil {
			return err
		}

		return tx.Model(&models.Worker{}).
			Where("id = ?", input.WorkerID).
			Update("rating", avg).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.DB.
		Preload("Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Preload("Worker.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		First(&review, review.ID)

	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetWorkerReviews returns all reviews for a worker, newest first
func (h *ReviewController) GetWorkerReviews(c *fiber.Ctx) error {
	workerID := c.Params("workerId")

	var reviews []models.Review
	if err := h.DB.
		Preload("Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(reviews)
}
