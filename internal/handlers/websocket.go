package handlers

import (
	"net/http"

	"pantry-tracker/internal/websocket"

	"github.com/gin-gonic/gin"
)

type WebSocketHandler struct {
	hub *websocket.Hub
}

func NewWebSocketHandler(hub *websocket.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// HandleWebSocket upgrades HTTP connection to WebSocket
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	h.hub.ServeWS(c)
}

// Status reports how many presentation clients are connected.
func (h *WebSocketHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"connected_clients": h.hub.ConnectedClients()})
}
