package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/catering-boq/hub"
	"github.com/yeremiapane/catering-boq/middlewares"
	"github.com/yeremiapane/catering-boq/utils"
)

// The token query parameter authenticates the socket, so any origin may connect.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSController struct {
	Hub *hub.Hub
}

func NewWSController(h *hub.Hub) *WSController {
	return &WSController{Hub: h}
}

// Serve upgrades the request and keeps the connection registered until it closes.
func (wc *WSController) Serve(c *gin.Context) {
	_, role := middlewares.CurrentUser(c)

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	wc.Hub.Serve(ws, role)
}
