package utils

import (
	"crypto/rand"
	"math/big"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GenerateID generates a random URL-safe identifier
// Format: 32 characters, lowercase alphanumeric
func GenerateID() string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	const length = 32

	result := make([]byte, length)
	for i := range result {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		result[i] = chars[num.Int64()]
	}

	return string(result)
}

// SetCookie sets an HttpOnly, SameSite=Lax cookie on the whole site
func SetCookie(c *gin.Context, name, value string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		name,   // name
		value,  // value
		maxAge, // max age in seconds
		"/",    // path
		"",     // domain
		secure, // secure (HTTPS only)
		true,   // httpOnly (not accessible via JS)
	)
}

// ClearCookie expires the named cookie
func ClearCookie(c *gin.Context, name string, secure bool) {
	SetCookie(c, name, "", -1, secure)
}
