package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending    BookingStatus = "PENDING"
	StatusConfirmed  BookingStatus = "CONFIRMED"
	StatusInProgress BookingStatus = "IN_PROGRESS"
	StatusCompleted  BookingStatus = "COMPLETED"
	StatusCancelled  BookingStatus = "CANCELLED"
)

// statusTransitions is the forward transition table. It is only consulted
// when BOOKING_ENFORCE_TRANSITIONS is enabled; by default any status can be
// set from any status.
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether moving to next is allowed by the
// transition table. Terminal states allow nothing.
func (b *Booking) CanTransition(next BookingStatus) bool {
	for _, allowed := range statusTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// BookingAddress is the address snapshot embedded in a booking. It is a
// copy taken at creation time, not a foreign key to the customer's saved
// addresses, so later address edits never touch past bookings.
type BookingAddress struct {
	Type    string `json:"type,omitempty"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
}

// Value implements the driver.Valuer interface
func (a BookingAddress) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil // Return as string for JSONB type
}

// Scan implements the sql.Scanner interface
func (a *BookingAddress) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal BookingAddress: unsupported type %T", value)
	}

	return json.Unmarshal(data, a)
}

type Booking struct {
	gorm.Model
	CustomerID  uint           `json:"customer_id"`
	Customer    User           `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	WorkerID    *uint          `json:"worker_id"`
	Worker      *Worker        `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	ServiceID   uint           `json:"service_id"`
	Service     Service        `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Status      BookingStatus  `json:"status"`
	ScheduledAt time.Time      `json:"scheduled_at"`
	CompletedAt *time.Time     `json:"completed_at"`
	TotalAmount float64        `json:"total_amount"`
	Address     BookingAddress `json:"address" gorm:"type:jsonb"`
	Notes       string         `json:"notes"`
}

// BeforeCreate defaults the status: a booking created with a worker already
// assigned starts CONFIRMED, one without enters the open job pool as PENDING.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		if b.WorkerID != nil {
			b.Status = StatusConfirmed
		} else {
			b.Status = StatusPending
		}
	}
	return nil
}
