package routes

import (
	"gigflow_backend/internal/handlers"
	"gigflow_backend/internal/logger"
	"gigflow_backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes registers the HTTP API, the health check and the
// WebSocket endpoint.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
	db *gorm.DB,
) {
	SetupPublicRoutes(ginRouter, db)

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.GigHandler.RegisterRoutes(api)
		appHandlers.BidHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
	}

	SetupWebSocketRoutes(ginRouter, wsHandler)
	logger.Info("Routes registered", "routes", len(ginRouter.Routes()))
}
