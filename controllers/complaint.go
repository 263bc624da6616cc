package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/models"
)

type ComplaintController struct {
	DB *gorm.DB
}

func NewComplaintController(db *gorm.DB) *ComplaintController {
	return &ComplaintController{DB: db}
}

// CreateComplaint files a complaint for the calling customer. Validation
// runs before any write: an undersized title or description never persists.
func (h *ComplaintController) CreateComplaint(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type ComplaintInput struct {
		Title       string                   `json:"title"`
		Description string                   `json:"description"`
		Priority    models.ComplaintPriority `json:"priority"`
	}

	input := new(ComplaintInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if len(input.Title) < 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title must be at least 5 characters",
		})
	}
	if len(input.Description) < 20 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Description must be at least 20 characters",
		})
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	switch input.Priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityUrgent:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid priority",
		})
	}

	complaint := models.Complaint{
		CustomerID:  userID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      models.ComplaintOpen,
	}

	if err := h.DB.Create(&complaint).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.DB.Preload("Customer", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email")
	}).First(&complaint, complaint.ID)

	return c.Status(fiber.StatusCreated).JSON(complaint)
}

// GetMyComplaints lists the calling customer's complaints, newest first
func (h *ComplaintController) GetMyComplaints(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var complaints []models.Complaint
	if err := h.DB.
		Where("customer_id = ?", userID).
		Order("created_at DESC").
		Find(&complaints).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(complaints)
}

// GetComplaint returns a complaint visible to its owning customer or any admin
func (h *ComplaintController) GetComplaint(c *fiber.Ctx) error {
	id := c.Params("id")
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(models.Role)

	var complaint models.Complaint
	if h.DB.Preload("Customer", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email, phone")
	}).First(&complaint, id).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Complaint not found",
		})
	}

	if role != models.RoleAdmin && complaint.CustomerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied",
		})
	}

	return c.JSON(complaint)
}
