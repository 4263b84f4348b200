package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmatt-net/site/dto"
	"github.com/mmatt-net/site/services"
)

const identityKey = "identity"

// SessionMiddleware resolves the visitor's identity and stores it in the
// context. Anonymous visitors pass through with a nil identity.
func SessionMiddleware(auth *services.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := auth.IsAuthenticated(c.Request)
		if err != nil {
			slog.Error("could not resolve session", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Could not resolve session",
			})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// GetIdentity returns the identity stored by SessionMiddleware, nil when anonymous
func GetIdentity(c *gin.Context) *dto.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, _ := value.(*dto.Identity)
	return identity
}
