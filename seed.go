package main

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/supplyline/supplyline-api/models"
)

// seedDemoAccounts creates the demo supplier and consumer used by the
// frontend "Use Demo" buttons. Existing accounts are left untouched so
// the seed can run on every startup.
func seedDemoAccounts(db *gorm.DB) error {
	if err := seedAccount(db, "supplier@test.com", "123", "Demo Supplier", models.RoleSupplierAdmin); err != nil {
		return err
	}
	return seedAccount(db, "buyer@test.com", "123", "Demo Buyer", models.RoleConsumer)
}

func seedAccount(db *gorm.DB, email, password, name, role string) error {
	var existing models.Identity
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("Seed: %s already exists, skipping", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	identity := models.Identity{
		Email: email,
		Name:  name,
		Role:  role,
	}
	if err := identity.SetPassword(password); err != nil {
		return err
	}
	if err := db.Create(&identity).Error; err != nil {
		return err
	}

	if role == models.RoleSupplierAdmin {
		vendor := models.Vendor{
			IdentityID:   identity.ID,
			DisplayName:  name + "'s Shop",
			Verified:     true,
			Discoverable: true,
		}
		if err := db.Create(&vendor).Error; err != nil {
			return err
		}
	}

	log.Printf("Seed: created %s %s (id %d)", role, email, identity.ID)
	return nil
}
