package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/foodplate-dashboard/kds"
	"github.com/yeremiapane/foodplate-dashboard/middlewares"
	"github.com/yeremiapane/foodplate-dashboard/utils"
)

type KDSController struct {
	Hub      *kds.Hub
	upgrader websocket.Upgrader
}

func NewKDSController(hub *kds.Hub) *KDSController {
	return &KDSController{
		Hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// KDSHandler upgrades to a websocket and keeps the screen registered until it
// disconnects.
func (kc *KDSController) KDSHandler(c *gin.Context) {
	screen := c.GetString(middlewares.CtxKeyScreen)

	ws, err := kc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.WithError(err).Warn("websocket upgrade failed")
		return
	}

	kc.Hub.RegisterClient(ws, screen)

	// screens never send anything; reading only detects the disconnect
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	kc.Hub.UnregisterClient(ws)
}
