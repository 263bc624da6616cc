package controllers

import (
	"sort"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/models"
)

type AnalyticsController struct {
	DB *gorm.DB
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

// timeWindow resolves the timeRange query parameter (days, default 30) to
// the window's start instant.
func timeWindow(c *fiber.Ctx) time.Time {
	days, err := strconv.Atoi(c.Query("timeRange", "30"))
	if err != nil || days <= 0 {
		days = 30
	}
	return time.Now().AddDate(0, 0, -days)
}

// GetOverview is the admin analytics endpoint: growth, trends, revenue and
// performance grouped over the requested window.
func (h *AnalyticsController) GetOverview(c *fiber.Ctx) error {
	startDate := timeWindow(c)

	type roleCount struct {
		Role  models.Role `json:"role"`
		Count int64       `json:"count"`
	}
	var userGrowth []roleCount
	h.DB.Model(&models.User{}).
		Select("role, COUNT(*) as count").
		Where("created_at >= ?", startDate).
		Group("role").
		Order("role ASC").
		Scan(&userGrowth)

	type statusStat struct {
		Status      models.BookingStatus `json:"status"`
		Count       int64                `json:"count"`
		TotalAmount float64              `json:"total_amount"`
	}
	var bookingTrends []statusStat
	h.DB.Model(&models.Booking{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(total_amount), 0) as total_amount").
		Where("created_at >= ?", startDate).
		Group("status").
		Scan(&bookingTrends)

	var completed []models.Booking
	h.DB.
		Where("status = ? AND completed_at >= ?", models.StatusCompleted, startDate).
		Find(&completed)

	revenueByDay := map[string]float64{}
	for _, b := range completed {
		if b.CompletedAt == nil {
			continue
		}
		day := b.CompletedAt.Format("2006-01-02")
		revenueByDay[day] += b.TotalAmount
	}

	var topWorkers []models.Worker
	h.DB.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Preload("Bookings", "status = ? AND completed_at >= ?", models.StatusCompleted, startDate).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, worker_id, rating")
		}).
		Order("rating DESC").
		Limit(10).
		Find(&topWorkers)

	type workerPerformance struct {
		models.Worker
		TotalEarnings float64 `json:"total_earnings"`
		AvgRating     float64 `json:"avg_rating"`
	}
	performance := make([]workerPerformance, 0, len(topWorkers))
	for _, w := range topWorkers {
		earnings := 0.0
		for _, b := range w.Bookings {
			earnings += b.TotalAmount
		}
		avg := 0.0
		if len(w.Reviews) > 0 {
			sum := 0
			for _, r := range w.Reviews {
				sum += r.Rating
			}
			avg = float64(sum) / float64(len(w.Reviews))
		}
		performance = append(performance, workerPerformance{
			Worker:        w,
			TotalEarnings: earnings,
			AvgRating:     avg,
		})
	}

	var services []models.Service
	h.DB.Find(&services)

	type serviceStat struct {
		models.Service
		TotalBookings int64   `json:"total_bookings"`
		TotalRevenue  float64 `json:"total_revenue"`
	}
	serviceStats := make([]serviceStat, 0, len(services))
	for _, s := range services {
		var count int64
		var revenue float64
		h.DB.Model(&models.Booking{}).
			Where("service_id = ? AND created_at >= ?", s.ID, startDate).
			Count(&count)
		h.DB.Model(&models.Booking{}).
			Where("service_id = ? AND created_at >= ?", s.ID, startDate).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&revenue)
		serviceStats = append(serviceStats, serviceStat{
			Service:       s,
			TotalBookings: count,
			TotalRevenue:  revenue,
		})
	}
	sort.Slice(serviceStats, func(i, j int) bool {
		return serviceStats[i].TotalBookings > serviceStats[j].TotalBookings
	})
	if len(serviceStats) > 10 {
		serviceStats = serviceStats[:10]
	}

	return c.JSON(fiber.Map{
		"user_growth":        userGrowth,
		"booking_trends":     bookingTrends,
		"revenue_by_day":     revenueByDay,
		"worker_performance": performance,
		"service_stats":      serviceStats,
	})
}

// GetWorkerAnalytics is the worker's own earnings/ratings breakdown
func (h *AnalyticsController) GetWorkerAnalytics(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	startDate := timeWindow(c)

	var worker models.Worker
	if h.DB.Where("user_id = ?", userID).First(&worker).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Worker profile not found",
		})
	}

	var completed []models.Booking
	h.DB.
		Where("worker_id = ? AND status = ? AND completed_at >= ?",
			worker.ID, models.StatusCompleted, startDate).
		Find(&completed)

	earningsByDay := map[string]float64{}
	totalEarnings := 0.0
	for _, b := range completed {
		if b.CompletedAt == nil {
			continue
		}
		day := b.CompletedAt.Format("2006-01-02")
		earningsByDay[day] += b.TotalAmount
		totalEarnings += b.TotalAmount
	}

	type statusStat struct {
		Status models.BookingStatus `json:"status"`
		Count  int64                `json:"count"`
	}
	var bookingStats []statusStat
	h.DB.Model(&models.Booking{}).
		Select("status, COUNT(*) as count").
		Where("worker_id = ? AND created_at >= ?", worker.ID, startDate).
		Group("status").
		Scan(&bookingStats)

	var reviews []models.Review
	h.DB.
		Preload("Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Where("worker_id = ? AND created_at >= ?", worker.ID, startDate).
		Order("created_at DESC").
		Find(&reviews)

	avgRating := 0.0
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		avgRating = float64(sum) / float64(len(reviews))
	}

	return c.JSON(fiber.Map{
		"earnings_by_day": earningsByDay,
		"booking_stats":   bookingStats,
		"recent_reviews":  reviews,
		"total_earnings":  totalEarnings,
		"avg_rating":      avgRating,
	})
}
