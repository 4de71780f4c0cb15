package middlewares

import (
	"fmt"
	"net/http"

	"github.com/L1quidL1ght/glimpse/utils"
	"github.com/gin-gonic/gin"
)

// RequireAdmin gates routes whose handlers mutate privileged state.
// This is the server-side authorization check; whatever the client UI
// shows or hides is a convenience only.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		if role != "admin" {
			utils.RespondError(c, http.StatusForbidden, fmt.Errorf("admin access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
