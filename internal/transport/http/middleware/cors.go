package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		// If no origin header (like from curl or same-origin), allow the request
		if origin == "" {
			setCORSHeaders(c)
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusOK)
				return
			}
			c.Next()
			return
		}

		if !slices.Contains(allowedOrigins, origin) {
			log.Warn().Str("origin", origin).Strs("allowed", allowedOrigins).Msg("origin not allowed")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Origin not allowed"})
			return
		}

		c.Header("Access-Control-Allow-Origin", origin)
		setCORSHeaders(c)

		// Handle preflight OPTIONS requests
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

func setCORSHeaders(c *gin.Context) {
	c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
	c.Header("Access-Control-Allow-Credentials", "true")
}
