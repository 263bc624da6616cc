package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/models"
	"github.com/homekaro/home-service-api/utils"
)

// StartReminderJobs initializes and starts the cron scheduler for
// booking reminder emails.
func StartReminderJobs(database *gorm.DB) {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()
	// Run every minute to check for bookings in the next hour
	_, err := c.AddFunc("* * * * *", func() { sendBookingReminders(database) })
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for booking reminders")
}

// sendBookingReminders checks for upcoming bookings and sends reminders
func sendBookingReminders(database *gorm.DB) {
	var bookings []models.Booking
	now := time.Now()
	// Look for bookings starting in the next hour
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	err := database.Preload("Customer").Preload("Service").Preload("Worker.User").
		Where("status = ? AND scheduled_at BETWEEN ? AND ?", models.StatusConfirmed, startWindow, endWindow).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}

	fmt.Printf("Found %d bookings for reminders\n", len(bookings))

	for _, booking := range bookings {
		err := sendReminderEmail(&booking)
		if err != nil {
			log.Printf("Failed to send reminder for booking %d: %v", booking.ID, err)
			continue
		}
		log.Printf("Sent reminder for booking %d to %s", booking.ID, booking.Customer.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(booking *models.Booking) error {
	workerName := "To be assigned"
	if booking.Worker != nil && booking.Worker.User.Name != "" {
		workerName = booking.Worker.User.Name
	}

	subject := fmt.Sprintf("Reminder: Upcoming Service - %s", booking.Service.Name)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your service booking scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Professional:</strong> %s</li>
			<li><strong>Scheduled At:</strong> %s</li>
			<li><strong>Amount:</strong> ₹%.2f</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>Please be available at the given address. If you need to reschedule or cancel, do so from the app as soon as possible.</p>
		<p>Best regards,</p>
		<p>Team HomeKaro</p>
	`, booking.Customer.Name, booking.Service.Name, workerName,
		booking.ScheduledAt.Format("2006-01-02 15:04:05"),
		booking.TotalAmount,
		booking.Status)

	return utils.SendEmail(booking.Customer.Email, subject, body)
}
