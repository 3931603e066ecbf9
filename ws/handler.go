package ws

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // продакшн: проверка origin
	},
}

type WSHandler struct {
	manager     *Manager
	authService *services.AuthService
	chatService *services.ChatService
}

func NewWSHandler(manager *Manager, authService *services.AuthService, chatService *services.ChatService) *WSHandler {
	return &WSHandler{
		manager:     manager,
		authService: authService,
		chatService: chatService,
	}
}

// ServeWS устанавливает websocket-соединение. Токен верифицируется ДО
// upgrade; соединение без валидного токена не создается вообще.
func (h *WSHandler) ServeWS(c *gin.Context) {
	token := extractToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication token is required"})
		return
	}

	user, err := h.authService.ResolveUserFromToken(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication failed"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("ws upgrade failed", "user_id", user.ID, "error", err)
		return
	}

	client := &Client{
		UserID:      user.ID,
		conn:        conn,
		send:        make(chan any, 256),
		manager:     h.manager,
		chatService: h.chatService,
	}

	h.manager.register <- client

	go client.readPump()
	go client.writePump()
}

func extractToken(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
