package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobhub_backend/internal/services"
	"jobhub_backend/internal/services/dto"
)

type ChatHandler struct {
	*BaseHandler
	chatService *services.ChatService
}

func NewChatHandler(base *BaseHandler, chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		BaseHandler: base,
		chatService: chatService,
	}
}

func (h *ChatHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("/jobs/:jobId/messages", auth, h.GetJobMessages)

	chat := rg.Group("/chat", auth)
	{
		chat.POST("/messages", h.SendMessage)
	}
}

// GetJobMessages - история чата job. Владелец видит все треды,
// ACCEPTED исполнитель - только свой.
func (h *ChatHandler) GetJobMessages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	messages, err := h.chatService.GetJobMessages(c.Request.Context(), c.Param("jobId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": messages})
}

// SendMessage - HTTP-вариант отправки; идет через тот же
// ChatService.SendMessage, что и websocket-канал.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	message, err := h.chatService.SendMessage(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": message})
}
