package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog item offered by a vendor
type Product struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	VendorID        uint           `gorm:"not null;index" json:"supplier_id"`
	Vendor          Vendor         `gorm:"foreignKey:VendorID" json:"-"`
	Name            string         `gorm:"not null" json:"name"`
	Price           float64        `gorm:"not null" json:"price"`
	Quantity        int            `gorm:"not null" json:"quantity"` // stock level
	Unit            string         `gorm:"not null" json:"unit"`
	DiscountPercent float64        `gorm:"not null;default:0" json:"discount_percent"`
	ImageS3Key      *string        `json:"image_s3_key,omitempty"`
	ImageURL        *string        `gorm:"-" json:"image_url,omitempty"`        // computed, presigned URL
	EffectiveUnit   float64        `gorm:"-" json:"effective_price,omitempty"` // computed, discounted unit price
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// EffectivePrice returns the unit price after applying the discount
// percentage. An order total is computed from effective prices at
// placement time and never revalued afterwards.
func (p *Product) EffectivePrice() float64 {
	return p.Price * (1 - p.DiscountPercent/100)
}
