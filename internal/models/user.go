package models

type User struct {
	BaseModel
	Name         string     `gorm:"not null"`
	Username     string     `gorm:"uniqueIndex;not null"`
	Email        string     `gorm:"uniqueIndex;not null"`
	Phone        string     `gorm:"uniqueIndex;not null"`
	PasswordHash string     `gorm:"not null"`
	Role         UserRole   `gorm:"type:varchar(20);not null"`
	Status       UserStatus `gorm:"type:varchar(20);default:'ACTIVE'"`
	Avatar       *string
	Bio          *string
	Age          *int
	Gender       *string
	Address      *string

	// Relations
	Jobs         []Job            `gorm:"foreignKey:CreatedBy"`
	Applications []JobApplication `gorm:"foreignKey:ApplicantID"`
}
