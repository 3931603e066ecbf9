package dto

import (
	"time"

	"jobhub_backend/internal/models"
)

type SendMessageRequest struct {
	JobID      string `json:"jobId" binding:"required" validate:"required,uuid"`
	ReceiverID string `json:"receiverId" binding:"required" validate:"required,uuid"`
	Message    string `json:"message" binding:"required" validate:"required,max=2000"`
}

type ChatMessageResponse struct {
	ID         string    `json:"id"`
	JobID      string    `json:"jobId"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewChatMessageResponse(msg *models.ChatMessage) *ChatMessageResponse {
	return &ChatMessageResponse{
		ID:         msg.ID,
		JobID:      msg.JobID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Message:    msg.Message,
		CreatedAt:  msg.CreatedAt,
	}
}
