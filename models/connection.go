package models

import (
	"strings"
	"time"
)

// ConnectionStatus is the state of a consumer-vendor connection.
type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionRejected ConnectionStatus = "rejected"
)

// ParseConnectionStatus normalises a raw status string. Matching is
// case-insensitive; unknown values return false.
func ParseConnectionStatus(raw string) (ConnectionStatus, bool) {
	switch ConnectionStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case ConnectionPending:
		return ConnectionPending, true
	case ConnectionAccepted:
		return ConnectionAccepted, true
	case ConnectionRejected:
		return ConnectionRejected, true
	}
	return "", false
}

// Is compares two statuses case-insensitively. Rows written by older
// versions of the system may carry mixed-case status values.
func (s ConnectionStatus) Is(other ConnectionStatus) bool {
	return strings.EqualFold(string(s), string(other))
}

// CanTransitionTo reports whether a status change is allowed. Only
// pending connections may move, and only to accepted or rejected.
func (s ConnectionStatus) CanTransitionTo(next ConnectionStatus) bool {
	if !s.Is(ConnectionPending) {
		return false
	}
	return next.Is(ConnectionAccepted) || next.Is(ConnectionRejected)
}

// Connection represents the approval relationship between a consumer
// identity and a vendor. At most one row exists per (consumer, vendor)
// pair, enforced by a composite unique index.
type Connection struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	ConsumerID uint             `gorm:"not null;index;uniqueIndex:idx_consumer_vendor" json:"consumer_id"`
	VendorID   uint             `gorm:"not null;index;uniqueIndex:idx_consumer_vendor" json:"supplier_id"`
	Vendor     Vendor           `gorm:"foreignKey:VendorID" json:"-"`
	Status     ConnectionStatus `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// TableName specifies the table name for the Connection model
func (Connection) TableName() string {
	return "connections"
}
