package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const CtxKeyScreen = "screen"

// Screens that may subscribe to live menu updates.
var screens = map[string]bool{
	"admin":   true,
	"kitchen": true,
}

// WebSocketScreenMiddleware reads ?screen= (default admin) and rejects unknown screens.
func WebSocketScreenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		screen := c.DefaultQuery("screen", "admin")
		if !screens[screen] {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}

		c.Set(CtxKeyScreen, screen)
		c.Next()
	}
}
