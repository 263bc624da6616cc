package controllers

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/models"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// notification is synthesized on every read, never persisted. There is no
// stored read/unread state, so everything always counts as unread.
type notification struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Title     string      `json:"title"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	CreatedAt time.Time   `json:"created_at"`
	Read      bool        `json:"read"`
}

// GetNotifications recomputes the caller's notification feed from current
// booking/worker/complaint state, newest first, capped at 20.
func (h *NotificationController) GetNotifications(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(models.Role)

	var notifications []notification
	var err error

	switch role {
	case models.RoleCustomer:
		notifications, err = h.customerNotifications(userID)
	case models.RoleWorker:
		notifications, err = h.workerNotifications(userID)
	case models.RoleAdmin:
		notifications, err = h.adminNotifications()
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	// Count before capping the feed so the badge reflects everything unread.
	unreadCount := len(notifications)
	if len(notifications) > 20 {
		notifications = notifications[:20]
	}

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"unread_count":  unreadCount,
	})
}

// MarkAsRead reports success without persisting anything; there is no
// stored notification to mark.
func (h *NotificationController) MarkAsRead(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
	})
}

func (h *NotificationController) customerNotifications(userID uint) ([]notification, error) {
	var bookings []models.Booking
	err := h.DB.
		Preload("Service").
		Preload("Worker.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Where("customer_id = ? AND status IN ?", userID,
			[]models.BookingStatus{models.StatusConfirmed, models.StatusInProgress, models.StatusCompleted}).
		Order("updated_at DESC").
		Limit(10).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]notification, 0, len(bookings))
	for _, b := range bookings {
		statusText := strings.ToLower(strings.ReplaceAll(string(b.Status), "_", " "))
		notifications = append(notifications, notification{
			ID:        fmt.Sprintf("%d", b.ID),
			Type:      "booking_update",
			Title:     "Booking " + statusText,
			Message:   fmt.Sprintf("Your %s booking is %s", b.Service.Name, statusText),
			Data:      b,
			CreatedAt: b.UpdatedAt,
		})
	}
	return notifications, nil
}

func (h *NotificationController) workerNotifications(userID uint) ([]notification, error) {
	var worker models.Worker
	if err := h.DB.Where("user_id = ?", userID).First(&worker).Error; err != nil {
		return nil, err
	}

	var newBookings []models.Booking
	err := h.DB.
		Preload("Service").
		Preload("Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Where("status = ? AND worker_id IS NULL", models.StatusPending).
		Order("created_at DESC").
		Limit(5).
		Find(&newBookings).Error
	if err != nil {
		return nil, err
	}

	var completedBookings []models.Booking
	err = h.DB.
		Preload("Service").
		Preload("Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Where("worker_id = ? AND status = ?", worker.ID, models.StatusCompleted).
		Order("completed_at DESC").
		Limit(5).
		Find(&completedBookings).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]notification, 0, len(newBookings)+len(completedBookings))
	for _, b := range newBookings {
		notifications = append(notifications, notification{
			ID:        fmt.Sprintf("new_%d", b.ID),
			Type:      "new_job",
			Title:     "New Job Available",
			Message:   fmt.Sprintf("%s job available for ₹%.0f", b.Service.Name, b.TotalAmount),
			Data:      b,
			CreatedAt: b.CreatedAt,
		})
	}
	for _, b := range completedBookings {
		createdAt := b.UpdatedAt
		if b.CompletedAt != nil {
			createdAt = *b.CompletedAt
		}
		notifications = append(notifications, notification{
			ID:        fmt.Sprintf("completed_%d", b.ID),
			Type:      "job_completed",
			Title:     "Job Completed",
			Message:   fmt.Sprintf("You earned ₹%.0f from %s", b.TotalAmount, b.Service.Name),
			Data:      b,
			CreatedAt: createdAt,
		})
	}
	return notifications, nil
}

func (h *NotificationController) adminNotifications() ([]notification, error) {
	var pendingWorkers []models.Worker
	err := h.DB.
		Preload("User").
		Where("is_verified = ?", false).
		Limit(5).
		Find(&pendingWorkers).Error
	if err != nil {
		return nil, err
	}

	var openComplaints []models.Complaint
	err = h.DB.
		Preload("Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Where("status = ?", models.ComplaintOpen).
		Order("created_at DESC").
		Limit(5).
		Find(&openComplaints).Error
	if err != nil {
		return nil, err
	}

	var completedBookings []models.Booking
	err = h.DB.
		Preload("Service").
		Preload("Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Where("status = ?", models.StatusCompleted).
		Order("completed_at DESC").
		Limit(5).
		Find(&completedBookings).Error
	if err != nil {
		return nil, err
	}

	var notifications []notification
	for _, w := range pendingWorkers {
		w.User.Password = ""
		notifications = append(notifications, notification{
			ID:        fmt.Sprintf("verify_%d", w.ID),
			Type:      "worker_verification",
			Title:     "Worker Verification Pending",
			Message:   fmt.Sprintf("%s is waiting for verification", w.User.Name),
			Data:      w,
			CreatedAt: w.User.CreatedAt,
		})
	}
	for _, cp := range openComplaints {
		notifications = append(notifications, notification{
			ID:        fmt.Sprintf("complaint_%d", cp.ID),
			Type:      "new_complaint",
			Title:     "New Complaint Filed",
			Message:   fmt.Sprintf("%s: %s", cp.Customer.Name, cp.Title),
			Data:      cp,
			CreatedAt: cp.CreatedAt,
		})
	}
	for _, b := range completedBookings {
		createdAt := b.UpdatedAt
		if b.CompletedAt != nil {
			createdAt = *b.CompletedAt
		}
		notifications = append(notifications, notification{
			ID:        fmt.Sprintf("revenue_%d", b.ID),
			Type:      "revenue_update",
			Title:     "New Revenue",
			Message:   fmt.Sprintf("₹%.0f earned from %s", b.TotalAmount, b.Service.Name),
			Data:      b,
			CreatedAt: createdAt,
		})
	}
	return notifications, nil
}
