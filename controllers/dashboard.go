package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/models"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GetDashboard dispatches once on the caller's role to the matching
// snapshot builder. Every snapshot is a pure read over current store state.
func (h *DashboardController) GetDashboard(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(models.Role)

	var data fiber.Map
	var err error

	switch role {
	case models.RoleCustomer:
		data, err = h.customerDashboard(userID)
	case models.RoleWorker:
		data, err = h.workerDashboard(userID)
	case models.RoleAdmin:
		data, err = h.adminDashboard()
	default:
		data = fiber.Map{}
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(data)
}

func (h *DashboardController) customerDashboard(userID uint) (fiber.Map, error) {
	var bookings []models.Booking
	if err := withBookingJoins(h.DB).
		Where("customer_id = ?", userID).
		Order("created_at DESC").
		Limit(5).
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	var totalSpent float64
	h.DB.Model(&models.Booking{}).
		Where("customer_id = ? AND status = ?", userID, models.StatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalSpent)

	var recentServices []models.Service
	h.DB.Order("created_at DESC").Limit(6).Find(&recentServices)

	// Stats are computed over the recent slice, matching the snapshot the
	// widget displays rather than all-time counts.
	active, completed := 0, 0
	for _, b := range bookings {
		switch b.Status {
		case models.StatusConfirmed, models.StatusInProgress:
			active++
		case models.StatusCompleted:
			completed++
		}
	}

	return fiber.Map{
		"stats": fiber.Map{
			"total_bookings":     len(bookings),
			"active_bookings":    active,
			"completed_bookings": completed,
			"total_spent":        totalSpent,
		},
		"recent_bookings":    bookings,
		"available_services": recentServices,
	}, nil
}

func (h *DashboardController) workerDashboard(userID uint) (fiber.Map, error) {
	var worker models.Worker
	if err := h.DB.Where("user_id = ?", userID).First(&worker).Error; err != nil {
		return nil, err
	}

	var bookings []models.Booking
	if err := h.DB.
		Preload("Service").
		Preload("Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email, phone")
		}).
		Where("worker_id = ?", worker.ID).
		Order("created_at DESC").
		Limit(10).
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	var totalEarnings float64
	h.DB.Model(&models.Booking{}).
		Where("worker_id = ? AND status = ?", worker.ID, models.StatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalEarnings)

	var availableJobs []models.Booking
	h.DB.
		Preload("Service").
		Preload("Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, phone")
		}).
		Where("status = ? AND worker_id IS NULL", models.StatusPending).
		Limit(5).
		Find(&availableJobs)

	active, completed := 0, 0
	for _, b := range bookings {
		switch b.Status {
		case models.StatusConfirmed, models.StatusInProgress:
			active++
		case models.StatusCompleted:
			completed++
		}
	}

	return fiber.Map{
		"stats": fiber.Map{
			"total_jobs":     len(bookings),
			"active_jobs":    active,
			"completed_jobs": completed,
			"total_earnings": totalEarnings,
			"rating":         worker.Rating,
			"is_verified":    worker.IsVerified,
		},
		"recent_jobs":    bookings,
		"available_jobs": availableJobs,
	}, nil
}

func (h *DashboardController) adminDashboard() (fiber.Map, error) {
	type roleCount struct {
		Role  models.Role
		Count int64
	}
	var roleCounts []roleCount
	h.DB.Model(&models.User{}).
		Select("role, COUNT(*) as count").
		Group("role").
		Scan(&roleCounts)

	usersByRole := map[models.Role]int64{}
	var totalUsers int64
	for _, rc := range roleCounts {
		usersByRole[rc.Role] = rc.Count
		totalUsers += rc.Count
	}

	var workers []models.Worker
	h.DB.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email")
	}).Order("rating DESC").Limit(5).Find(&workers)

	var bookings []models.Booking
	if err := withBookingJoins(h.DB).
		Order("created_at DESC").
		Limit(10).
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	var totalRevenue float64
	h.DB.Model(&models.Booking{}).
		Where("status = ?", models.StatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue)

	var openComplaints []models.Complaint
	h.DB.
		Preload("Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email")
		}).
		Where("status = ?", models.ComplaintOpen).
		Limit(5).
		Find(&openComplaints)

	return fiber.Map{
		"stats": fiber.Map{
			"total_users":        totalUsers,
			"customers":          usersByRole[models.RoleCustomer],
			"workers":            usersByRole[models.RoleWorker],
			"total_bookings":     len(bookings),
			"total_revenue":      totalRevenue,
			"pending_complaints": len(openComplaints),
		},
		"recent_bookings":    bookings,
		"pending_complaints": openComplaints,
		"top_workers":        workers,
	}, nil
}
