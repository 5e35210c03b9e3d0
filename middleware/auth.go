package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/supplyline/supplyline-api/config"
	"github.com/supplyline/supplyline-api/models"
	"github.com/supplyline/supplyline-api/services"
)

const identityContextKey = "identity"

// RequireAuth is a middleware that validates the bearer token and loads
// the calling identity from the database. Handlers behind it can rely on
// CurrentIdentity returning a row.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	tokens := services.NewTokenService(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_TOKEN",
					"message": "Authorization header with bearer token is required",
				},
			})
			c.Abort()
			return
		}

		email, err := tokens.Verify(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "Failed to validate bearer token",
				},
			})
			c.Abort()
			return
		}

		db := config.GetDB()
		var identity models.Identity
		if err := db.Where("email = ?", email).First(&identity).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNKNOWN_IDENTITY",
					"message": "Token subject does not match any account",
				},
			})
			c.Abort()
			return
		}

		c.Set(identityContextKey, &identity)
		c.Next()
	}
}

// CurrentIdentity extracts the authenticated identity from the Gin context
func CurrentIdentity(c *gin.Context) (*models.Identity, error) {
	value, exists := c.Get(identityContextKey)
	if !exists {
		return nil, &AuthError{Code: "MISSING_IDENTITY", Message: "Identity not found in context"}
	}

	identity, ok := value.(*models.Identity)
	if !ok {
		return nil, &AuthError{Code: "INVALID_IDENTITY", Message: "Identity is not in the expected format"}
	}

	return identity, nil
}

// SetIdentity stores an identity in the Gin context (primarily for testing)
func SetIdentity(c *gin.Context, identity *models.Identity) {
	c.Set(identityContextKey, identity)
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
