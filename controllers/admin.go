package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/models"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetStats returns the admin overview: user counts by role, worker rating
// average, bookings grouped by status with revenue, and recent activity.
func (h *AdminController) GetStats(c *fiber.Ctx) error {
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

	var workerCount int64
	var avgWorkerRating float64
	h.DB.Model(&models.Worker{}).Count(&workerCount)
	h.DB.Model(&models.Worker{}).Select("COALESCE(AVG(rating), 0)").Scan(&avgWorkerRating)

	type statusStat struct {
		Status  models.BookingStatus
		Count   int64
		Revenue float64
	}
	var statusStats []statusStat
	h.DB.Model(&models.Booking{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(total_amount), 0) as revenue").
		Group("status").
		Scan(&statusStats)

	bookingsByStatus := fiber.Map{}
	var totalBookings int64
	for _, s := range statusStats {
		bookingsByStatus[strings.ToLower(string(s.Status))] = fiber.Map{
			"count":   s.Count,
			"revenue": s.Revenue,
		}
		totalBookings += s.Count
	}

	var completedCount int64
	var totalRevenue float64
	h.DB.Model(&models.Booking{}).
		Where("status = ?", models.StatusCompleted).
		Count(&completedCount)
	h.DB.Model(&models.Booking{}).
		Where("status = ?", models.StatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue)

	var recentActivity []models.Booking
	withBookingJoins(h.DB).
		Order("created_at DESC").
		Limit(10).
		Find(&recentActivity)

	return c.JSON(fiber.Map{
		"users": fiber.Map{
			"total":     totalUsers,
			"customers": usersByRole[models.RoleCustomer],
			"workers":   usersByRole[models.RoleWorker],
			"admins":    usersByRole[models.RoleAdmin],
		},
		"workers": fiber.Map{
			"total":          workerCount,
			"average_rating": roundRating(avgWorkerRating),
		},
		"bookings": fiber.Map{
			"total":     totalBookings,
			"by_status": bookingsByStatus,
		},
		"revenue": fiber.Map{
			"total":              totalRevenue,
			"completed_bookings": completedCount,
		},
		"recent_activity": recentActivity,
	})
}

// GetAllBookings returns every booking, newest first
func (h *AdminController) GetAllBookings(c *fiber.Ctx) error {
	var bookings []models.Booking
	if err := withBookingJoins(h.DB).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(bookings)
}

// GetAllComplaints returns every complaint, newest first
func (h *AdminController) GetAllComplaints(c *fiber.Ctx) error {
	var complaints []models.Complaint
	if err := h.DB.
		Preload("Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email, phone")
		}).
		Order("created_at DESC").
		Find(&complaints).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(complaints)
}

// VerifyWorker marks a worker verified
func (h *AdminController) VerifyWorker(c *fiber.Ctx) error {
	id := c.Params("id")

	var worker models.Worker
	if h.DB.First(&worker, id).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Worker not found",
		})
	}

	if err := h.DB.Model(&worker).Update("is_verified", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.DB.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email")
	}).First(&worker, worker.ID)

	return c.JSON(worker)
}

// SuspendWorker pulls a worker out of the marketplace listings
func (h *AdminController) SuspendWorker(c *fiber.Ctx) error {
	id := c.Params("id")

	var worker models.Worker
	if h.DB.First(&worker, id).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Worker not found",
		})
	}

	if err := h.DB.Model(&worker).Update("is_available", false).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.DB.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email")
	}).First(&worker, worker.ID)

	return c.JSON(worker)
}

// GetUsers lists users with role/search filters and pagination
func (h *AdminController) GetUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := h.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.
		Preload("CustomerProfile.Addresses").
		Preload("WorkerProfile").
		Preload("Bookings", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, customer_id, status")
		}).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	for i := range users {
		users[i].Password = ""
	}

	return c.JSON(fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
			"pages": (int(total) + limit - 1) / limit,
		},
	})
}

// GetWorkers lists every worker with derived earnings/rating stats
func (h *AdminController) GetWorkers(c *fiber.Ctx) error {
	var workers []models.Worker
	if err := h.DB.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email, phone, created_at")
		}).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, worker_id, rating")
		}).
		Preload("Bookings", "status = ?", models.StatusCompleted).
		Find(&workers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	type workerWithStats struct {
		models.Worker
		Stats fiber.Map `json:"stats"`
	}

	result := make([]workerWithStats, 0, len(workers))
	for _, worker := range workers {
		totalEarnings := 0.0
		for _, b := range worker.Bookings {
			totalEarnings += b.TotalAmount
		}

		// Fall back to the cached rating when no reviews are loaded
		averageRating := worker.Rating
		if len(worker.Reviews) > 0 {
			sum := 0
			for _, r := range worker.Reviews {
				sum += r.Rating
			}
			averageRating = float64(sum) / float64(len(worker.Reviews))
		}

		result = append(result, workerWithStats{
			Worker: worker,
			Stats: fiber.Map{
				"total_earnings": totalEarnings,
				"completed_jobs": len(worker.Bookings),
				"average_rating": averageRating,
			},
		})
	}

	return c.JSON(fiber.Map{
		"workers": result,
		"pagination": fiber.Map{
			"total": len(result),
			"page":  1,
			"limit": len(result),
			"pages": 1,
		},
	})
}

// UpdateComplaintStatus sets a complaint's status and optionally its priority
func (h *AdminController) UpdateComplaintStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	type StatusInput struct {
		Status   models.ComplaintStatus   `json:"status"`
		Priority models.ComplaintPriority `json:"priority"`
	}

	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var complaint models.Complaint
	if h.DB.First(&complaint, id).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Complaint not found",
		})
	}

	updates := map[string]interface{}{
		"status": input.Status,
	}
	if input.Priority != "" {
		updates["priority"] = input.Priority
	}
	if err := h.DB.Model(&complaint).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.DB.Preload("Customer", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email")
	}).First(&complaint, complaint.ID)

	return c.JSON(complaint)
}

// GetPendingKYC lists workers waiting on a KYC decision
func (h *AdminController) GetPendingKYC(c *fiber.Ctx) error {
	var workers []models.Worker
	if err := h.DB.
		Where("kyc_status = ?", models.KYCPending).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email, phone, created_at")
		}).
		Order("created_at DESC").
		Find(&workers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(workers)
}

// UpdateKYC records the admin's KYC decision for a worker. isVerified is
// derived from the decision, so a rejection also un-verifies.
func (h *AdminController) UpdateKYC(c *fiber.Ctx) error {
	workerID := c.Params("workerId")

	type DecisionInput struct {
		Status models.KYCStatus `json:"status"`
	}

	input := new(DecisionInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var worker models.Worker
	if h.DB.First(&worker, workerID).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Worker not found",
		})
	}

	if err := h.DB.Model(&worker).Updates(map[string]interface{}{
		"kyc_status":  input.Status,
		"is_verified": input.Status == models.KYCVerified,
	}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.DB.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email")
	}).First(&worker, worker.ID)

	return c.JSON(worker)
}
