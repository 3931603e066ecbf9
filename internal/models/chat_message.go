package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatMessage создается только через ChatService после проверки
// участников; после создания не изменяется.
type ChatMessage struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	JobID      string `gorm:"type:uuid;not null;index"`
	SenderID   string `gorm:"type:uuid;not null"`
	ReceiverID string `gorm:"type:uuid;not null"`
	Message    string `gorm:"not null"`
	CreatedAt  time.Time

	// Relations
	Job      *Job  `gorm:"foreignKey:JobID"`
	Sender   *User `gorm:"foreignKey:SenderID"`
	Receiver *User `gorm:"foreignKey:ReceiverID"`
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
