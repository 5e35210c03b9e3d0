package services

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/supplyline/supplyline-api/models"
)

// GateError is an authorization or lookup failure raised by the
// connection gate. Handlers translate it directly into an HTTP response.
type GateError struct {
	Status  int
	Code    string
	Message string
}

func (e *GateError) Error() string {
	return e.Message
}

func forbidden(code, message string) *GateError {
	return &GateError{Status: http.StatusForbidden, Code: code, Message: message}
}

func notFound(code, message string) *GateError {
	return &GateError{Status: http.StatusNotFound, Code: code, Message: message}
}

// RequestLink creates a pending connection from a consumer to a vendor.
// Only consumer-role identities may request links. If a row already
// exists for the (consumer, vendor) pair it is returned unchanged, in
// whatever state it is in; a repeated request is not a resubmission.
// The second return value reports whether a new row was created.
func RequestLink(db *gorm.DB, caller *models.Identity, vendorID uint) (*models.Connection, bool, error) {
	if caller.Role != models.RoleConsumer {
		return nil, false, forbidden("FORBIDDEN", "Consumers only")
	}

	var vendor models.Vendor
	if err := db.First(&vendor, vendorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, notFound("SUPPLIER_NOT_FOUND", "Supplier not found")
		}
		return nil, false, err
	}

	var existing models.Connection
	err := db.Where("consumer_id = ? AND vendor_id = ?", caller.ID, vendorID).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	conn := models.Connection{
		ConsumerID: caller.ID,
		VendorID:   vendorID,
		Status:     models.ConnectionPending,
	}
	if err := db.Create(&conn).Error; err != nil {
		return nil, false, err
	}
	return &conn, true, nil
}

// RespondLink transitions a pending connection to accepted or rejected.
// Only the identity owning the connection's vendor may respond, and only
// pending connections may move. Two concurrent responds race at the
// storage layer; the last write wins.
func RespondLink(db *gorm.DB, responder *models.Identity, connectionID uint, next models.ConnectionStatus) (*models.Connection, error) {
	var conn models.Connection
	if err := db.First(&conn, connectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("LINK_NOT_FOUND", "Link request not found")
		}
		return nil, err
	}

	if _, err := RequireVendorOwner(db, responder, conn.VendorID); err != nil {
		return nil, err
	}

	if !conn.Status.CanTransitionTo(next) {
		return nil, &GateError{
			Status:  http.StatusConflict,
			Code:    "INVALID_TRANSITION",
			Message: "Only pending link requests can be accepted or rejected",
		}
	}

	conn.Status = next
	if err := db.Save(&conn).Error; err != nil {
		return nil, err
	}
	return &conn, nil
}

// ConnectionBetween returns the connection row for a (consumer, vendor)
// pair, or nil when none exists.
func ConnectionBetween(db *gorm.DB, consumerID, vendorID uint) (*models.Connection, error) {
	var conn models.Connection
	err := db.Where("consumer_id = ? AND vendor_id = ?", consumerID, vendorID).First(&conn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// requireAccepted is the shared gate check behind catalog reads and
// order placement: access requires a connection in state accepted.
// Status matching is case-insensitive.
func requireAccepted(db *gorm.DB, consumerID, vendorID uint) error {
	conn, err := ConnectionBetween(db, consumerID, vendorID)
	if err != nil {
		return err
	}
	if conn == nil || !conn.Status.Is(models.ConnectionAccepted) {
		return forbidden("NOT_CONNECTED", "You must connect with this supplier first")
	}
	return nil
}

// CanViewCatalog reports whether a consumer may read a vendor's catalog
func CanViewCatalog(db *gorm.DB, consumerID, vendorID uint) error {
	return requireAccepted(db, consumerID, vendorID)
}

// CanOrder reports whether a consumer may place an order with a vendor
func CanOrder(db *gorm.DB, consumerID, vendorID uint) error {
	return requireAccepted(db, consumerID, vendorID)
}

// RequireVendorOwner loads a vendor and checks that the given identity
// owns it. Every vendor-scoped operation goes through this check so the
// ownership rule cannot drift between endpoints.
func RequireVendorOwner(db *gorm.DB, caller *models.Identity, vendorID uint) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := db.First(&vendor, vendorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("SUPPLIER_NOT_FOUND", "Supplier not found")
		}
		return nil, err
	}
	if vendor.IdentityID != caller.ID {
		return nil, forbidden("FORBIDDEN", "You do not manage this supplier")
	}
	return &vendor, nil
}

// VendorFor returns the vendor profile owned by an identity, or nil
// when the identity has none.
func VendorFor(db *gorm.DB, caller *models.Identity) (*models.Vendor, error) {
	var vendor models.Vendor
	err := db.Where("identity_id = ?", caller.ID).First(&vendor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}
