package repositories

import (
	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/models"

	"gorm.io/gorm"
)

// SchemaCapabilities фиксирует опциональные части схемы один раз на старте.
// Решение о форме запроса принимается здесь, а не разбором текста ошибок
// в рантайме.
type SchemaCapabilities struct {
	CategoryDescription bool
}

func DetectSchemaCapabilities(db *gorm.DB) SchemaCapabilities {
	caps := SchemaCapabilities{
		CategoryDescription: db.Migrator().HasColumn(&models.Category{}, "description"),
	}
	if !caps.CategoryDescription {
		logger.Warn("categories.description column missing, description queries disabled")
	}
	return caps
}
