package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmatt-net/site/dto"
	"github.com/mmatt-net/site/middleware"
)

// GetCurrentUser returns the identity behind the session cookie
func GetCurrentUser(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "User not authenticated",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"session": dto.Session{JSON: *identity},
	})
}
