package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/supplyline/supplyline-api/config"
	"github.com/supplyline/supplyline-api/middleware"
	"github.com/supplyline/supplyline-api/models"
	"github.com/supplyline/supplyline-api/services"
)

// CreateLinkRequest represents the request body for requesting a connection
type CreateLinkRequest struct {
	SupplierID uint `json:"supplier_id" binding:"required"`
}

// RespondLinkRequest represents the request body for responding to a connection
type RespondLinkRequest struct {
	Status string `json:"status" binding:"required"`
}

// LinkResponse is the wire shape of a connection, optionally carrying
// the supplier's display name for consumer-facing listings.
type LinkResponse struct {
	ID           uint                    `json:"id"`
	ConsumerID   uint                    `json:"consumer_id"`
	SupplierID   uint                    `json:"supplier_id"`
	Status       models.ConnectionStatus `json:"status"`
	CreatedAt    time.Time               `json:"created_at"`
	SupplierName string                  `json:"supplier_name,omitempty"`
}

func linkResponse(conn *models.Connection, supplierName string) LinkResponse {
	return LinkResponse{
		ID:           conn.ID,
		ConsumerID:   conn.ConsumerID,
		SupplierID:   conn.VendorID,
		Status:       conn.Status,
		CreatedAt:    conn.CreatedAt,
		SupplierName: supplierName,
	}
}

// RequestLink handles POST /api/v1/links - a consumer requests a
// connection to a supplier. Repeating a request returns the existing
// connection unchanged.
func RequestLink(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	var req CreateLinkRequest
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
	conn, created, err := services.RequestLink(db, identity, req.SupplierID)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"success": true,
		"data":    linkResponse(conn, ""),
	})
}

// ListMyLinks handles GET /api/v1/links/my-requests - lists the caller's
// connections with supplier names
func ListMyLinks(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	db := config.GetDB()
	var conns []models.Connection
	if err := db.Preload("Vendor").Where("consumer_id = ?", identity.ID).Find(&conns).Error; err != nil {
		respondError(c, err)
		return
	}

	links := make([]LinkResponse, 0, len(conns))
	for i := range conns {
		links = append(links, linkResponse(&conns[i], conns[i].Vendor.DisplayName))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    links,
	})
}

// ListIncomingLinks handles GET /api/v1/supplier/links - lists incoming
// connection requests for the caller's vendor. An account without a
// vendor profile gets an empty list, not an error.
func ListIncomingLinks(c *gin.Context) {
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

	links := make([]LinkResponse, 0)
	if vendor != nil {
		var conns []models.Connection
		if err := db.Where("vendor_id = ?", vendor.ID).Find(&conns).Error; err != nil {
			respondError(c, err)
			return
		}
		for i := range conns {
			links = append(links, linkResponse(&conns[i], ""))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    links,
	})
}

// RespondLink handles PUT /api/v1/supplier/links/:id - the vendor owner
// accepts or rejects a pending connection
func RespondLink(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	linkID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Link ID must be numeric",
			},
		})
		return
	}

	var req RespondLinkRequest
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

	status, ok := models.ParseConnectionStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Status must be accepted or rejected",
			},
		})
		return
	}

	db := config.GetDB()
	conn, err := services.RespondLink(db, identity, uint(linkID), status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    linkResponse(conn, ""),
	})
}
