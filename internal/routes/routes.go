package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobhub_backend/internal/handlers"
	"jobhub_backend/internal/logger"
	"jobhub_backend/ws"
)

// RegisterRoutes регистрирует все HTTP и WebSocket маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WSHandler,
	auth gin.HandlerFunc,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Регистрация HTTP API v1
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, auth)
		appHandlers.UserHandler.RegisterRoutes(api, auth)
		appHandlers.JobHandler.RegisterRoutes(api, auth)
		appHandlers.ApplicationHandler.RegisterRoutes(api, auth)
		appHandlers.CategoryHandler.RegisterRoutes(api, auth)
		appHandlers.ChatHandler.RegisterRoutes(api, auth)
	}

	// Регистрация WebSocket: токен проверяется внутри ServeWS до upgrade
	ginRouter.GET("/ws", wsHandler.ServeWS)
	logger.Info("WebSocket route /ws registered")
}
