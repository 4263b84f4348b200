package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmatt-net/site/services"
)

// AdminMiddleware creates a middleware that ensures the visitor may edit content.
// This middleware should be used after SessionMiddleware
func AdminMiddleware(policy services.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := GetIdentity(c)
		if identity == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		if !policy.IsAdmin(identity) {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "Admin privileges required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
