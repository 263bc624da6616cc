package models

import (
	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	BookingID  *uint   `json:"booking_id"`
	CustomerID uint    `json:"customer_id"`
	Customer   User    `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	WorkerID   uint    `json:"worker_id"`
	Worker     *Worker `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	Rating     int     `json:"rating" gorm:"not null"`
	Comment    string  `json:"comment"`
}
