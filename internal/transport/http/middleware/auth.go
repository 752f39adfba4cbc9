package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/4-in-a-row/engine/pkg/auth"
	"github.com/iamasit07/4-in-a-row/engine/pkg/httputil"
)

const GameIDKey = "game_id"

// GameAuthMiddleware requires a game token whose game matches the :id route parameter.
func GameAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := auth.ValidateGameToken(secret, tokenString)
		if err != nil {
			httputil.ClearGameCookie(c.Writer)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if claims.GameID != c.Param("id") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token does not belong to this game"})
			return
		}

		c.Set(GameIDKey, claims.GameID)
		c.Next()
	}
}
