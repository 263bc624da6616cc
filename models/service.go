package models

import (
	"gorm.io/gorm"
)

type Service struct {
	gorm.Model
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"base_price"`
	IsActive    bool    `json:"is_active" gorm:"default:true"`
}
