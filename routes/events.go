package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photostudio-server/models"
	ws "photostudio-server/websocket"
)

// EventsHandler upgrades admin clients onto the store-change event feed
type EventsHandler struct {
	Hub *ws.Hub
}

// HandleEvents serves the WebSocket endpoint. Must run behind
// WebSocketAuthMiddleware; only admins may subscribe.
func (h *EventsHandler) HandleEvents(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Admin access required",
			"message": "The event feed is restricted to administrators",
		})
		return
	}

	ws.ServeEvents(h.Hub, c.Writer, c.Request, user.ID)
}
