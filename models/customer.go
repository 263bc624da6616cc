package models

import (
	"gorm.io/gorm"
)

// Customer is the customer-side extension of a User. It is created either
// at registration or lazily the first time the user adds an address.
type Customer struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"uniqueIndex"`
	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Addresses []Address `json:"addresses,omitempty" gorm:"foreignKey:CustomerID"`
}

type Address struct {
	gorm.Model
	CustomerID uint   `json:"customer_id"`
	Type       string `json:"type"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
	IsDefault  bool   `json:"is_default" gorm:"default:false"`
}
