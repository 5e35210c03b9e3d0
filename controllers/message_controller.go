package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/supplyline/supplyline-api/config"
	"github.com/supplyline/supplyline-api/middleware"
	"github.com/supplyline/supplyline-api/models"
)

// SendMessageRequest represents the request body for sending a message
type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Content     string `json:"content" binding:"required"`
}

// SendMessage handles POST /api/v1/chat - sends a direct message to
// another identity
func SendMessage(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	var req SendMessageRequest
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
	var recipient models.Identity
	if err := db.First(&recipient, req.RecipientID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RECIPIENT_NOT_FOUND",
				"message": "Recipient not found",
			},
		})
		return
	}

	message := models.Message{
		SenderID:    identity.ID,
		RecipientID: recipient.ID,
		Text:        req.Content,
	}
	if err := db.Create(&message).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    message,
	})
}

// GetChatHistory handles GET /api/v1/chat/:user_id - returns the
// conversation between the caller and another identity, both directions,
// ordered by sent time. The caller is by construction a party to every
// returned row.
func GetChatHistory(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	otherID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "User ID must be numeric",
			},
		})
		return
	}

	db := config.GetDB()
	messages := make([]models.Message, 0)
	err = db.Where(
		"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		identity.ID, uint(otherID), uint(otherID), identity.ID,
	).Order("created_at").Find(&messages).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    messages,
	})
}
