package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type KYCStatus string

const (
	KYCPending  KYCStatus = "PENDING"
	KYCVerified KYCStatus = "VERIFIED"
	KYCRejected KYCStatus = "REJECTED"
)

// Worker is the worker-side extension of a User. Rating and TotalJobs are
// cached aggregates: Rating is recomputed from the full review set on every
// review creation, TotalJobs is incremented when a booking completes.
type Worker struct {
	gorm.Model
	UserID       uint           `json:"user_id" gorm:"uniqueIndex"`
	User         User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Profession   string         `json:"profession"`
	Experience   int            `json:"experience"`
	HourlyRate   float64        `json:"hourly_rate"`
	KYCStatus    KYCStatus      `json:"kyc_status" gorm:"default:PENDING"`
	IsVerified   bool           `json:"is_verified" gorm:"default:false"`
	IsAvailable  bool           `json:"is_available" gorm:"default:true"`
	Rating       float64        `json:"rating" gorm:"default:0"`
	TotalJobs    int            `json:"total_jobs" gorm:"default:0"`
	Skills       datatypes.JSON `json:"skills"`
	Portfolio    datatypes.JSON `json:"portfolio"`
	Availability datatypes.JSON `json:"availability"`
	AadharCard   string         `json:"aadhar_card,omitempty"`
	PanCard      string         `json:"pan_card,omitempty"`
	ProfilePhoto string         `json:"profile_photo,omitempty"`
	Reviews      []Review       `json:"reviews,omitempty" gorm:"foreignKey:WorkerID"`
	Bookings     []Booking      `json:"bookings,omitempty" gorm:"foreignKey:WorkerID"`
}
