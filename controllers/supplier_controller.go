package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplyline/supplyline-api/config"
	"github.com/supplyline/supplyline-api/middleware"
	"github.com/supplyline/supplyline-api/models"
	"github.com/supplyline/supplyline-api/services"
)

// UpdateProfileRequest represents the request body for updating a vendor profile
type UpdateProfileRequest struct {
	Name         *string `json:"name"`
	About        *string `json:"about"`
	Discoverable *bool   `json:"discoverable"`
}

// ListSuppliers handles GET /api/v1/suppliers - lists discoverable vendors
// Visibility is a supplier-controlled toggle: a vendor hidden here can
// still serve its existing connections.
func ListSuppliers(c *gin.Context) {
	db := config.GetDB()

	var vendors []models.Vendor
	if err := db.Where("discoverable = ?", true).Find(&vendors).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    vendors,
	})
}

// GetMyProfile handles GET /api/v1/supplier/profile - returns the caller's vendor profile
func GetMyProfile(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	db := config.GetDB()
	vendor, err := services.VendorFor(db, identity)
	if err != nil {
		respondError(c, err)
		return
	}
	if vendor == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_SUPPLIER_PROFILE",
				"message": "This account has no supplier profile",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    vendor,
	})
}

// UpdateMyProfile handles PUT /api/v1/supplier/profile - updates display
// name, about text and the discoverable toggle. The verified flag is not
// settable through the API.
func UpdateMyProfile(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	vendor, err := services.VendorFor(db, identity)
	if err != nil {
		respondError(c, err)
		return
	}
	if vendor == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_SUPPLIER_PROFILE",
				"message": "This account has no supplier profile",
			},
		})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil && *req.Name != "" {
		updates["display_name"] = *req.Name
	}
	if req.About != nil {
		updates["about"] = *req.About
	}
	if req.Discoverable != nil {
		updates["discoverable"] = *req.Discoverable
	}

	if len(updates) > 0 {
		if err := db.Model(vendor).Updates(updates).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	if err := db.First(vendor, vendor.ID).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    vendor,
	})
}
