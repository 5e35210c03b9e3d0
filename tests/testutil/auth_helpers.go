package testutil

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/supplyline/supplyline-api/config"
	"github.com/supplyline/supplyline-api/models"
	"github.com/supplyline/supplyline-api/services"
)

// TestConfig returns a configuration suitable for test suites. The
// signing secret is fixed so tokens issued by IssueTestToken verify
// against routers built with the same config.
func TestConfig() *config.Config {
	return &config.Config{
		DatabaseURL:     "sqlite://:memory:",
		Port:            "8080",
		GoEnv:           "test",
		JWTSecret:       "suite-test-secret",
		TokenTTLMinutes: 60,
	}
}

// OpenTestDB opens an in-memory database with the full schema migrated
// and installs it as the active database instance.
func OpenTestDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open test database: %w", err)
	}

	err = db.AutoMigrate(
		&models.Identity{},
		&models.Vendor{},
		&models.Product{},
		&models.Connection{},
		&models.Order{},
		&models.OrderLine{},
		&models.SupportCase{},
		&models.Message{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	config.SetDB(db)
	return db, nil
}

// IssueTestToken signs a bearer token for the given email using the
// test configuration's secret.
func IssueTestToken(cfg *config.Config, email string) (string, error) {
	return services.NewTokenService(cfg).Issue(email)
}

// CreateIdentity persists an identity with the given role and the
// password "test-password".
func CreateIdentity(db *gorm.DB, email, name, role string) (*models.Identity, error) {
	identity := models.Identity{Email: email, Name: name, Role: role}
	if err := identity.SetPassword("test-password"); err != nil {
		return nil, err
	}
	if err := db.Create(&identity).Error; err != nil {
		return nil, err
	}
	return &identity, nil
}

// CreateVendorFor persists a discoverable vendor profile owned by the
// given identity.
func CreateVendorFor(db *gorm.DB, identity *models.Identity, displayName string) (*models.Vendor, error) {
	vendor := models.Vendor{
		IdentityID:   identity.ID,
		DisplayName:  displayName,
		Discoverable: true,
	}
	if err := db.Create(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}
