package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplyline/supplyline-api/services"
)

// respondError translates a service-layer error into the JSON error
// envelope. Gate errors carry their own status and code; anything else
// is a storage failure.
func respondError(c *gin.Context, err error) {
	var gateErr *services.GateError
	if errors.As(err, &gateErr) {
		c.JSON(gateErr.Status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    gateErr.Code,
				"message": gateErr.Message,
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "DATABASE_ERROR",
			"message": "Unexpected storage failure",
		},
	})
}

// respondUnauthorized is the shared reply for requests whose identity
// could not be extracted from the context.
func respondUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": "Could not extract user information",
		},
	})
}
