package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyAuth validates the shared integration API key carried in the
// X-API-Key header. The comparison is constant time; absence, emptiness and
// mismatch all produce the same 403 response.
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-API-Key")
		if provided == "" {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "API key is required",
			})
			c.Abort()
			return
		}

		// An unconfigured key rejects everything rather than accepting everything.
		if apiKey == "" ||
			subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Invalid API key",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
