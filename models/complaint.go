package models

import (
	"gorm.io/gorm"
)

type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "LOW"
	PriorityMedium ComplaintPriority = "MEDIUM"
	PriorityHigh   ComplaintPriority = "HIGH"
	PriorityUrgent ComplaintPriority = "URGENT"
)

type ComplaintStatus string

const (
	ComplaintOpen       ComplaintStatus = "OPEN"
	ComplaintInProgress ComplaintStatus = "IN_PROGRESS"
	ComplaintResolved   ComplaintStatus = "RESOLVED"
	ComplaintClosed     ComplaintStatus = "CLOSED"
)

type Complaint struct {
	gorm.Model
	CustomerID  uint              `json:"customer_id"`
	Customer    User              `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Priority    ComplaintPriority `json:"priority" gorm:"default:MEDIUM"`
	Status      ComplaintStatus   `json:"status" gorm:"default:OPEN"`
}
