package models

type Category struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;not null"`
	Description *string
	Status      CategoryStatus `gorm:"type:varchar(20);default:'PENDING'"`
	CreatedBy   string         `gorm:"type:uuid;not null"`

	// Relations
	Creator *User `gorm:"foreignKey:CreatedBy"`
}
