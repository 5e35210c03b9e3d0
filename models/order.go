package models

import "time"

// Order represents a placed order. The total is a snapshot computed
// from effective prices at placement time.
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	ConsumerID  uint        `gorm:"not null;index" json:"consumer_id"`
	VendorID    uint        `gorm:"not null;index" json:"supplier_id"`
	Vendor      Vendor      `gorm:"foreignKey:VendorID" json:"-"`
	TotalAmount float64     `gorm:"not null" json:"total_amount"`
	Status      string      `gorm:"not null;default:'pending'" json:"status"`
	Lines       []OrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderLine is a single line item on an order
type OrderLine struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	OrderID   uint `gorm:"not null;index" json:"order_id"`
	ProductID uint `gorm:"not null" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`
}

// TableName specifies the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "order_lines"
}
