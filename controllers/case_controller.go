package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/supplyline/supplyline-api/config"
	"github.com/supplyline/supplyline-api/middleware"
	"github.com/supplyline/supplyline-api/models"
)

// CreateCaseRequest represents the request body for opening a support case
type CreateCaseRequest struct {
	Details string `json:"details" binding:"required"`
	OrderID *uint  `json:"order_id"`
}

// CreateCase handles POST /api/v1/complaints - opens a support case,
// optionally linked to an order
func CreateCase(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	var req CreateCaseRequest
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

	supportCase := models.SupportCase{
		ConsumerID: identity.ID,
		Details:    req.Details,
		Status:     models.CaseOpen,
		OrderID:    req.OrderID,
	}

	db := config.GetDB()
	if err := db.Create(&supportCase).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    supportCase,
	})
}

// ListMyCases handles GET /api/v1/complaints - lists the caller's support cases
func ListMyCases(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	db := config.GetDB()
	cases := make([]models.SupportCase, 0)
	if err := db.Where("consumer_id = ?", identity.ID).Find(&cases).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cases,
	})
}

// EscalateCase handles PUT /api/v1/complaints/:id/escalate - moves a
// case to investigating. Supplier staff who escalate a case become its
// assigned sales agent.
func EscalateCase(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	caseID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Case ID must be numeric",
			},
		})
		return
	}

	db := config.GetDB()
	var supportCase models.SupportCase
	if err := db.First(&supportCase, uint(caseID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CASE_NOT_FOUND",
				"message": "Support case not found",
			},
		})
		return
	}

	supportCase.Status = models.CaseInvestigating
	if identity.Role == models.RoleSupplierSales || identity.Role == models.RoleSupplierManager {
		supportCase.AssignedSalesID = &identity.ID
	}

	if err := db.Save(&supportCase).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    supportCase,
	})
}
