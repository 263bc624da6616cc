package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/models"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GetProfile returns the caller's user row joined with whatever role-specific
// data exists: customer profile + addresses, worker profile + recent
// reviews/bookings, plus the user's own bookings and authored reviews.
func (h *UserController) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	err := h.DB.
		Preload("CustomerProfile.Addresses").
		Preload("WorkerProfile.Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(10)
		}).
		Preload("WorkerProfile.Reviews.Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Preload("WorkerProfile.Bookings", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(10)
		}).
		Preload("WorkerProfile.Bookings.Service").
		Preload("WorkerProfile.Bookings.Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, phone")
		}).
		Preload("Bookings", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(10)
		}).
		Preload("Bookings.Service").
		Preload("Bookings.Worker.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, phone")
		}).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Reviews.Worker.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		First(&user, userID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	user.Password = ""

	return c.JSON(user)
}

// UpdateProfile updates name/phone, and the worker profile fields when the
// caller is a worker.
func (h *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type ProfileInput struct {
		Name       *string        `json:"name"`
		Phone      *string        `json:"phone"`
		Profession *string        `json:"profession"`
		Experience *int           `json:"experience"`
		HourlyRate *float64       `json:"hourly_rate"`
		Skills     datatypes.JSON `json:"skills"`
	}

	input := new(ProfileInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var user models.User
	if h.DB.First(&user, userID).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	userUpdates := map[string]interface{}{}
	if input.Name != nil {
		userUpdates["name"] = *input.Name
	}
	if input.Phone != nil {
		userUpdates["phone"] = *input.Phone
	}
	if len(userUpdates) > 0 {
		if err := h.DB.Model(&user).Updates(userUpdates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	if user.Role == models.RoleWorker {
		workerUpdates := map[string]interface{}{}
		if input.Profession != nil {
			workerUpdates["profession"] = *input.Profession
		}
		if input.Experience != nil {
			workerUpdates["experience"] = *input.Experience
		}
		if input.HourlyRate != nil {
			workerUpdates["hourly_rate"] = *input.HourlyRate
		}
		if input.Skills != nil {
			workerUpdates["skills"] = input.Skills
		}
		if len(workerUpdates) > 0 {
			if err := h.DB.Model(&models.Worker{}).
				Where("user_id = ?", userID).
				Updates(workerUpdates).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
		}
	}

	h.DB.Preload("CustomerProfile").Preload("WorkerProfile").First(&user, userID)
	user.Password = ""

	return c.JSON(user)
}

// AddAddress creates an address, lazily creating the customer profile the
// first time around.
func (h *UserController) AddAddress(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(addressInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var customer models.Customer
	if h.DB.Where("user_id = ?", userID).First(&customer).RowsAffected == 0 {
		customer = models.Customer{UserID: userID}
		if err := h.DB.Create(&customer).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
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

	err := h.DB.Transaction(func(tx *gorm.DB) error {
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

	return c.JSON(address)
}

// GetDashboardStats returns the per-role stat counters used by the
// dashboard header widgets.
func (h *UserController) GetDashboardStats(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(models.Role)

	stats := fiber.Map{}

	switch role {
	case models.RoleCustomer:
		var totalBookings, activeBookings, completedBookings int64
		var totalSpent float64

		h.DB.Model(&models.Booking{}).Where("customer_id = ?", userID).Count(&totalBookings)
		h.DB.Model(&models.Booking{}).
			Where("customer_id = ? AND status IN ?", userID,
				[]models.BookingStatus{models.StatusPending, models.StatusConfirmed, models.StatusInProgress}).
			Count(&activeBookings)
		h.DB.Model(&models.Booking{}).
			Where("customer_id = ? AND status = ?", userID, models.StatusCompleted).
			Count(&completedBookings)
		h.DB.Model(&models.Booking{}).
			Where("customer_id = ? AND status = ?", userID, models.StatusCompleted).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&totalSpent)

		stats = fiber.Map{
			"total_bookings":     totalBookings,
			"active_bookings":    activeBookings,
			"completed_bookings": completedBookings,
			"total_spent":        totalSpent,
		}

	case models.RoleWorker:
		var worker models.Worker
		if h.DB.Where("user_id = ?", userID).First(&worker).RowsAffected == 0 {
			break
		}

		var totalJobs, activeJobs, completedJobs int64
		var totalEarnings float64

		h.DB.Model(&models.Booking{}).Where("worker_id = ?", worker.ID).Count(&totalJobs)
		h.DB.Model(&models.Booking{}).
			Where("worker_id = ? AND status IN ?", worker.ID,
				[]models.BookingStatus{models.StatusConfirmed, models.StatusInProgress}).
			Count(&activeJobs)
		h.DB.Model(&models.Booking{}).
			Where("worker_id = ? AND status = ?", worker.ID, models.StatusCompleted).
			Count(&completedJobs)
		h.DB.Model(&models.Booking{}).
			Where("worker_id = ? AND status = ?", worker.ID, models.StatusCompleted).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&totalEarnings)

		stats = fiber.Map{
			"total_jobs":     totalJobs,
			"active_jobs":    activeJobs,
			"completed_jobs": completedJobs,
			"total_earnings": totalEarnings,
			"rating":         worker.Rating,
			"is_verified":    worker.IsVerified,
		}
	}

	return c.JSON(stats)
}
