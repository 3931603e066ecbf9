package dto

import (
	"time"

	"jobhub_backend/internal/models"
)

type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required" validate:"required,min=2,max=60"`
	Description *string `json:"description"`
}

type UpdateCategoryStatusRequest struct {
	Status models.CategoryStatus `json:"status" binding:"required" validate:"required,oneof=APPROVED REJECTED"`
}

type CategoryResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description *string               `json:"description,omitempty"`
	Status      models.CategoryStatus `json:"status"`
	CreatedBy   string                `json:"createdBy"`
	CreatedAt   time.Time             `json:"createdAt"`
}

func NewCategoryResponse(category *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Status:      category.Status,
		CreatedBy:   category.CreatedBy,
		CreatedAt:   category.CreatedAt,
	}
}
