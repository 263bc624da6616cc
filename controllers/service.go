package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/models"
)

type ServiceController struct {
	DB *gorm.DB
}

func NewServiceController(db *gorm.DB) *ServiceController {
	return &ServiceController{DB: db}
}

// GetAllServices returns all active services
func (h *ServiceController) GetAllServices(c *fiber.Ctx) error {
	var services []models.Service

	if err := h.DB.Where("is_active = ?", true).Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(services)
}

func (h *ServiceController) GetService(c *fiber.Ctx) error {
	id := c.Params("id")

	var service models.Service
	if h.DB.First(&service, id).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	return c.JSON(service)
}

// CreateService creates a new service listing. The route is deliberately
// left unauthenticated to match the existing catalog behavior.
func (h *ServiceController) CreateService(c *fiber.Ctx) error {
	type ServiceInput struct {
		Name        string  `json:"name"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
		BasePrice   float64 `json:"base_price"`
	}

	input := new(ServiceInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if len(input.Name) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Service name is required",
		})
	}
	if input.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Category is required",
		})
	}
	if input.BasePrice < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid price",
		})
	}

	service := models.Service{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		BasePrice:   input.BasePrice,
		IsActive:    true,
	}

	if err := h.DB.Create(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(service)
}
