package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmatt-net/site/services"
	"github.com/mmatt-net/site/utils"
)

// Logout handles user logout
func Logout(cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Clear the cookie by setting max-age to -1 (expired)
		utils.ClearCookie(c, services.SessionCookieName, cookieSecure)

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Logged out successfully",
		})
	}
}
