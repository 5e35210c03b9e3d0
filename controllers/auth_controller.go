package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/supplyline/supplyline-api/config"
	"github.com/supplyline/supplyline-api/models"
	"github.com/supplyline/supplyline-api/services"
)

// RegisterRequest represents the request body for account registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// TokenRequest represents the request body for issuing a bearer token
type TokenRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/v1/auth/register - creates a new identity
// Registering a supplier_admin also creates the vendor profile, so a
// supplier can log in and manage a catalog immediately.
func Register(c *gin.Context) {
	var req RegisterRequest
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

	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ROLE",
				"message": "Role must be one of consumer, supplier_admin, supplier_sales, supplier_manager",
			},
		})
		return
	}

	db := config.GetDB()

	// Duplicate email check happens before any write
	var existing models.Identity
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EMAIL_EXISTS",
				"message": "An account with this email already exists",
			},
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, err)
		return
	}

	identity := models.Identity{
		Email: req.Email,
		Name:  req.Name,
		Role:  req.Role,
	}
	if err := identity.SetPassword(req.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "HASHING_ERROR",
				"message": "Failed to process password",
			},
		})
		return
	}

	if err := db.Create(&identity).Error; err != nil {
		respondError(c, err)
		return
	}

	// Supplier admins get their vendor profile immediately
	if identity.Role == models.RoleSupplierAdmin {
		vendor := models.Vendor{
			IdentityID:   identity.ID,
			DisplayName:  identity.Name,
			Discoverable: true,
		}
		if err := db.Create(&vendor).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    identity,
	})
}

// IssueToken handles POST /api/v1/auth/token - verifies credentials and
// returns a signed bearer token
func IssueToken(c *gin.Context) {
	var req TokenRequest
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
	var identity models.Identity
	err := db.Where("email = ?", req.Email).First(&identity).Error
	if err != nil || !identity.CheckPassword(req.Password) {
		// Same reply for unknown email and wrong password
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "Bad credentials",
			},
		})
		return
	}

	tokens := services.NewTokenService(config.GetConfig())
	token, err := tokens.Issue(identity.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TOKEN_ERROR",
				"message": "Failed to issue token",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"access_token": token,
			"token_type":   "bearer",
			"user_id":      identity.ID,
			"role":         identity.Role,
		},
	})
}
