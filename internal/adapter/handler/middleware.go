package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyAuth guards the API group with a static X-API-Key header check.
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-API-Key") != apiKey {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			c.Abort()
			return
		}
		c.Next()
	}
}
