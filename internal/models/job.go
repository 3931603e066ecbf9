package models

import (
	"time"

	"gorm.io/datatypes"
)

type Job struct {
	BaseModelWithDeleted
	CreatedBy   string `gorm:"type:uuid;not null;index"`
	CategoryID  string `gorm:"type:uuid;not null"`
	Title       string `gorm:"not null"`
	Description string
	Budget      float64
	JobType     string
	Latitude    float64
	Longitude   float64
	Address     *string
	DueDate     *time.Time
	Images      datatypes.JSON `gorm:"type:jsonb"`
	Status      JobStatus      `gorm:"type:varchar(20);default:'OPEN';index"`

	// Relations
	Owner        *User            `gorm:"foreignKey:CreatedBy"`
	Category     *Category        `gorm:"foreignKey:CategoryID"`
	Applications []JobApplication `gorm:"foreignKey:JobID"`
	Messages     []ChatMessage    `gorm:"foreignKey:JobID"`
}
