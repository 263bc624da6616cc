package models

import (
	"time"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleWorker   Role = "WORKER"
	RoleAdmin    Role = "ADMIN"
)

type User struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Email           string    `json:"email" gorm:"unique"`
	Password        string    `json:"password,omitempty"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	Role            Role      `json:"role" gorm:"default:CUSTOMER"`
	CustomerProfile *Customer `json:"customer_profile,omitempty" gorm:"foreignKey:UserID"`
	WorkerProfile   *Worker   `json:"worker_profile,omitempty" gorm:"foreignKey:UserID"`
	Bookings        []Booking `json:"bookings,omitempty" gorm:"foreignKey:CustomerID"`
	Reviews         []Review  `json:"reviews,omitempty" gorm:"foreignKey:CustomerID"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
