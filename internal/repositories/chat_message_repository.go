package repositories

import (
	"context"

	"jobhub_backend/internal/models"

	"gorm.io/gorm"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, msg *models.ChatMessage) error
	// ListByJob возвращает ВСЕ сообщения job по возрастанию created_at
	// (полная история для владельца)
	ListByJob(ctx context.Context, jobID string) ([]models.ChatMessage, error)
	// ListByJobBetween возвращает только переписку между двумя участниками
	ListByJobBetween(ctx context.Context, jobID, userA, userB string) ([]models.ChatMessage, error)
}

type chatMessageRepository struct {
	db *gorm.DB
}

func NewChatMessageRepository(db *gorm.DB) ChatMessageRepository {
	return &chatMessageRepository{db: db}
}

func (r *chatMessageRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *chatMessageRepository) ListByJob(ctx context.Context, jobID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *chatMessageRepository) ListByJobBetween(ctx context.Context, jobID, userA, userB string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}
