package models

import "time"

// Support case statuses used by the complaint workflow.
const (
	CaseOpen          = "open"
	CaseInvestigating = "investigating"
)

// SupportCase represents a consumer complaint, optionally linked to an order
type SupportCase struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ConsumerID        uint      `gorm:"not null;index" json:"consumer_id"`
	Details           string    `gorm:"type:text;not null" json:"details"`
	Status            string    `gorm:"not null;default:'open'" json:"status"`
	OrderID           *uint     `json:"order_id,omitempty"`
	AssignedSalesID   *uint     `json:"assigned_sales_id,omitempty"`
	AssignedManagerID *uint     `json:"assigned_manager_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName specifies the table name for the SupportCase model
func (SupportCase) TableName() string {
	return "support_cases"
}
