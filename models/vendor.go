package models

import "time"

// Vendor represents a supplier's business profile. Exactly one vendor
// exists per supplier_admin identity.
type Vendor struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	IdentityID   uint      `gorm:"uniqueIndex;not null" json:"identity_id"`
	DisplayName  string    `gorm:"not null" json:"name"`
	Verified     bool      `gorm:"not null;default:false" json:"verification_status"`
	About        string    `gorm:"type:text" json:"about"`
	Discoverable bool      `gorm:"not null;default:true" json:"discoverable"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Vendor model
func (Vendor) TableName() string {
	return "vendors"
}
