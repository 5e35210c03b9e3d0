package controllers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/supplyline/supplyline-api/config"
	"github.com/supplyline/supplyline-api/middleware"
	"github.com/supplyline/supplyline-api/models"
)

// setupTestRouter creates a bare gin engine in test mode
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

// setupTestDB creates an in-memory sqlite database with all models
// migrated and installs it as the active database
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Identity{},
		&models.Vendor{},
		&models.Product{},
		&models.Connection{},
		&models.Order{},
		&models.OrderLine{},
		&models.SupportCase{},
		&models.Message{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}

// authAs is a stand-in for the real auth middleware: it injects the
// given identity into the request context the same way RequireAuth does
func authAs(identity *models.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetIdentity(c, identity)
		c.Next()
	}
}

// createConsumer persists a consumer identity for tests
func createConsumer(t *testing.T, db *gorm.DB, email string) *models.Identity {
	t.Helper()

	identity := models.Identity{
		Email: email,
		Name:  "Test Consumer",
		Role:  models.RoleConsumer,
	}
	if err := identity.SetPassword("secret"); err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if err := db.Create(&identity).Error; err != nil {
		t.Fatalf("Failed to create consumer: %v", err)
	}
	return &identity
}

// createSupplier persists a supplier_admin identity with its vendor profile
func createSupplier(t *testing.T, db *gorm.DB, email, name string) (*models.Identity, *models.Vendor) {
	t.Helper()

	identity := models.Identity{
		Email: email,
		Name:  name,
		Role:  models.RoleSupplierAdmin,
	}
	if err := identity.SetPassword("secret"); err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if err := db.Create(&identity).Error; err != nil {
		t.Fatalf("Failed to create supplier: %v", err)
	}

	vendor := models.Vendor{
		IdentityID:   identity.ID,
		DisplayName:  name,
		Discoverable: true,
	}
	if err := db.Create(&vendor).Error; err != nil {
		t.Fatalf("Failed to create vendor: %v", err)
	}
	return &identity, &vendor
}

// connect creates a connection row in the given state
func connect(t *testing.T, db *gorm.DB, consumer *models.Identity, vendor *models.Vendor, status models.ConnectionStatus) *models.Connection {
	t.Helper()

	conn := models.Connection{
		ConsumerID: consumer.ID,
		VendorID:   vendor.ID,
		Status:     status,
	}
	if err := db.Create(&conn).Error; err != nil {
		t.Fatalf("Failed to create connection: %v", err)
	}
	return &conn
}
