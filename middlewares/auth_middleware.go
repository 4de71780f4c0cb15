package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/L1quidL1ght/glimpse/utils"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires the session token as a bearer credential on
// every call. Identity and role come from the verified claims, never
// from anything the client asserts.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid token format"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if utils.IsTokenBlacklisted(tokenString) {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("session has been signed out"))
			c.Abort()
			return
		}

		claims, err := utils.ParseSessionToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}

		if claims.StaffID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid staff id in token"))
			c.Abort()
			return
		}

		c.Set("staff_id", claims.StaffID)
		c.Set("role", claims.Role)
		c.Set("token", tokenString)
		c.Next()
	}
}
