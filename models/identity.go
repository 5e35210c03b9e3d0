package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Identity roles. A role is fixed at registration and never changes.
const (
	RoleConsumer        = "consumer"
	RoleSupplierAdmin   = "supplier_admin"
	RoleSupplierSales   = "supplier_sales"
	RoleSupplierManager = "supplier_manager"
)

// Identity represents an account in the system (consumer or supplier staff)
type Identity struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	Role         string    `gorm:"not null;default:'consumer'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Identity model
func (Identity) TableName() string {
	return "identities"
}

// IsSupplierStaff reports whether the role belongs to a supplier organisation.
func (i *Identity) IsSupplierStaff() bool {
	return i.Role == RoleSupplierAdmin || i.Role == RoleSupplierSales || i.Role == RoleSupplierManager
}

// SetPassword hashes the raw password with bcrypt and stores the hash.
// The raw password is never persisted.
func (i *Identity) SetPassword(raw string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	i.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a raw password against the stored bcrypt hash.
func (i *Identity) CheckPassword(raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(i.PasswordHash), []byte(raw)) == nil
}

// ValidRole reports whether the given role is one of the known identity roles.
func ValidRole(role string) bool {
	switch role {
	case RoleConsumer, RoleSupplierAdmin, RoleSupplierSales, RoleSupplierManager:
		return true
	}
	return false
}
