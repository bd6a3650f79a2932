package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/customer-directory-api/internal/models"
)

// RequireRole is a middleware that checks if the account has the required role.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Set by the JWTAuth middleware
		_, exists := c.Get("accountID")
		if !exists {
			c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "Not authenticated"))
			c.Abort()
			return
		}

		role, exists := c.Get("accountRole")
		if !exists {
			c.JSON(http.StatusForbidden, models.NewAPIError(models.ErrForbidden, "Role not found in token"))
			c.Abort()
			return
		}

		accountRole, ok := role.(string)
		if !ok {
			c.JSON(http.StatusForbidden, models.NewAPIError(models.ErrForbidden, "Invalid role format"))
			c.Abort()
			return
		}

		if accountRole != requiredRole {
			c.JSON(http.StatusForbidden, models.NewAPIError(models.ErrForbidden, "Insufficient permissions", map[string]interface{}{
				"required_role": requiredRole,
				"account_role":  accountRole,
			}))
			c.Abort()
			return
		}

		c.Next()
	}
}
