package controllers

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/models"
)

type BookingController struct {
	DB *gorm.DB
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{DB: db}
}

// withBookingJoins preloads the projections every booking response carries.
// User rows are trimmed to non-sensitive columns.
func withBookingJoins(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Service").
		Preload("Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email, phone")
		}).
		Preload("Worker").
		Preload("Worker.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, phone")
		})
}

// CreateBooking creates a booking. With a worker supplied it starts
// CONFIRMED; without one it enters the open job pool as PENDING. No
// availability check is made against the assigned worker's calendar.
func (h *BookingController) CreateBooking(c *fiber.Ctx) error {
	type BookingInput struct {
		ServiceID   uint                  `json:"service_id"`
		WorkerID    *uint                 `json:"worker_id"`
		ScheduledAt time.Time             `json:"scheduled_at"`
		Address     models.BookingAddress `json:"address"`
		Notes       string                `json:"notes"`
		TotalAmount float64               `json:"total_amount"`
	}

	input := new(BookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.ServiceID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid service ID",
		})
	}
	if input.ScheduledAt.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date format",
		})
	}
	if input.TotalAmount < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid amount",
		})
	}
	if input.Address.Street == "" || input.Address.City == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Street address and city are required",
		})
	}

	booking := models.Booking{
		CustomerID:  c.Locals("userID").(uint),
		ServiceID:   input.ServiceID,
		WorkerID:    input.WorkerID,
		ScheduledAt: input.ScheduledAt,
		Address:     input.Address,
		Notes:       input.Notes,
		TotalAmount: input.TotalAmount,
	}

	if err := h.DB.Create(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	withBookingJoins(h.DB).First(&booking, booking.ID)

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// GetMyBookings returns the authenticated customer's bookings
func (h *BookingController) GetMyBookings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var bookings []models.Booking
	if err := withBookingJoins(h.DB).
		Where("customer_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(bookings)
}

// GetWorkerBookings returns the bookings assigned to the calling worker
func (h *BookingController) GetWorkerBookings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var worker models.Worker
	if h.DB.Where("user_id = ?", userID).First(&worker).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Worker profile not found",
		})
	}

	var bookings []models.Booking
	if err := h.DB.
		Preload("Service").
		Preload("Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email, phone")
		}).
		Where("worker_id = ?", worker.ID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(bookings)
}

// AcceptBooking claims an open job for the calling worker. The claim is a
// single compare-and-swap: only a PENDING booking with no worker can be
// taken, so two workers racing on the same job leave exactly one winner.
func (h *BookingController) AcceptBooking(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var worker models.Worker
	if h.DB.Where("user_id = ?", userID).First(&worker).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Worker profile not found",
		})
	}

	res := h.DB.Model(&models.Booking{}).
		Where("id = ? AND status = ? AND worker_id IS NULL", id, models.StatusPending).
		Updates(map[string]interface{}{
			"worker_id": worker.ID,
			"status":    models.StatusConfirmed,
		})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": res.Error.Error(),
		})
	}

	if res.RowsAffected == 0 {
		var existing models.Booking
		if h.DB.First(&existing, id).RowsAffected == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Booking not found",
			})
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Job is no longer available",
		})
	}

	var booking models.Booking
	withBookingJoins(h.DB).First(&booking, id)

	return c.JSON(booking)
}

// UpdateBookingStatus sets a booking's status. Completion stamps
// CompletedAt and bumps the assigned worker's job counter; both writes and
// the status change ride in one transaction. Transition-table validation is
// opt-in via BOOKING_ENFORCE_TRANSITIONS.
func (h *BookingController) UpdateBookingStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	type StatusInput struct {
		Status models.BookingStatus `json:"status"`
	}

	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if !input.Status.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status",
		})
	}

	var booking models.Booking
	if h.DB.First(&booking, id).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	if os.Getenv("BOOKING_ENFORCE_TRANSITIONS") == "true" && !booking.CanTransition(input.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid transition from " + string(booking.Status) + " to " + string(input.Status),
		})
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status": input.Status,
		}
		if input.Status == models.StatusCompleted {
			updates["completed_at"] = time.Now()
		}

		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return err
		}

		if input.Status == models.StatusCompleted && booking.WorkerID != nil {
			return tx.Model(&models.Worker{}).
				Where("id = ?", *booking.WorkerID).
				UpdateColumn("total_jobs", gorm.Expr("total_jobs + 1")).Error
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	withBookingJoins(h.DB).First(&booking, id)

	return c.JSON(booking)
}

// GetBooking returns a booking by id
func (h *BookingController) GetBooking(c *fiber.Ctx) error {
	id := c.Params("id")

	var booking models.Booking
	if withBookingJoins(h.DB).First(&booking, id).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	return c.JSON(booking)
}
