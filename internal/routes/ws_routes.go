package routes

import (
	"gigflow_backend/ws"

	"github.com/gin-gonic/gin"
)

// SetupWebSocketRoutes mounts GET /ws. The handler authenticates the
// credential itself (query token, bearer header or cookie) before the
// upgrade, so no auth middleware sits in front of it.
func SetupWebSocketRoutes(r *gin.Engine, wsHandler *ws.WebSocketHandler) {
	r.GET("/ws", wsHandler.ServeWS)
}
