package middlewares

import (
	"github.com/L1quidL1ght/glimpse/utils"
	"github.com/gin-gonic/gin"
)

// WebSocketAuthMiddleware validates the token from the query string,
// since browsers cannot set headers on websocket upgrades.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		if utils.IsTokenBlacklisted(token) {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseSessionToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("role", claims.Role)
		c.Set("staff_id", claims.StaffID)
		c.Next()
	}
}
