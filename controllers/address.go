package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/models"
)

type AddressController struct {
	DB *gorm.DB
}

func NewAddressController(db *gorm.DB) *AddressController {
	return &AddressController{DB: db}
}

type addressInput struct {
	Type      string `json:"type"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	IsDefault bool   `json:"is_default"`
}

func (h *AddressController) customerFor(c *fiber.Ctx) (*models.Customer, error) {
	userID := c.Locals("userID").(uint)

	var customer models.Customer
	if err := h.DB.Where("user_id = ?", userID).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// CreateAddress adds an address to the caller's customer profile. Setting
// it default unsets every other default in the same transaction, so the
// at-most-one-default invariant holds even under concurrent requests.
func (h *AddressController) CreateAddress(c *fiber.Ctx) error {
	input := new(addressInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	customer, err := h.customerFor(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Customer profile not found",
		})
	}

	address := models.Address{
		CustomerID: customer.ID,
		Type:       input.Type,
		Street:     input.Street,
		City:       input.City,
		State:      input.State,
		ZipCode:    input.ZipCode,
		IsDefault:  input.IsDefault,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if input.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("customer_id = ?", customer.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(address)
}

// GetAddresses lists the caller's addresses, default first
func (h *AddressController) GetAddresses(c *fiber.Ctx) error {
	customer, err := h.customerFor(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Customer profile not found",
		})
	}

	var addresses []models.Address
	if err := h.DB.
		Where("customer_id = ?", customer.ID).
		Order("is_default DESC").
		Find(&addresses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(addresses)
}

// UpdateAddress updates one of the caller's own addresses
func (h *AddressController) UpdateAddress(c *fiber.Ctx) error {
	id := c.Params("id")

	input := new(addressInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	customer, err := h.customerFor(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Customer profile not found",
		})
	}

	var address models.Address
	if h.DB.Where("id = ? AND customer_id = ?", id, customer.ID).First(&address).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Address not found",
		})
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if input.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("customer_id = ?", customer.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Model(&address).Updates(map[string]interface{}{
			"type":       input.Type,
			"street":     input.Street,
			"city":       input.City,
			"state":      input.State,
			"zip_code":   input.ZipCode,
			"is_default": input.IsDefault,
		}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(address)
}

// DeleteAddress removes one of the caller's own addresses
func (h *AddressController) DeleteAddress(c *fiber.Ctx) error {
	id := c.Params("id")

	customer, err := h.customerFor(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Customer profile not found",
		})
	}

	var address models.Address
	if h.DB.Where("id = ? AND customer_id = ?", id, customer.ID).First(&address).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Address not found",
		})
	}

	if err := h.DB.Delete(&address).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Address deleted successfully",
	})
}

// SetDefaultAddress flips the default flag to the given address. Unset and
// set ride in one transaction; sequential callers always end with exactly
// one default.
func (h *AddressController) SetDefaultAddress(c *fiber.Ctx) error {
	id := c.Params("id")

	customer, err := h.customerFor(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Customer profile not found",
		})
	}

	var address models.Address
	if h.DB.Where("id = ? AND customer_id = ?", id, customer.ID).First(&address).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Address not found",
		})
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Address{}).
			Where("customer_id = ?", customer.ID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&address).Update("is_default", true).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(address)
}
