package services

import (
	"context"
	"errors"
	"strings"

	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"
)

type CategoryService struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory создает PENDING категорию; одобряет админ.
func (s *CategoryService) CreateCategory(ctx context.Context, userID string, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	category := &models.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Status:      models.CategoryStatusPending,
		CreatedBy:   userID,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrCategoryAlreadyExists) {
			return nil, apperrors.ErrConflict(err, "category", "Category already exists")
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewCategoryResponse(category)
	return &resp, nil
}

func (s *CategoryService) ListApproved(ctx context.Context, search string) ([]dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.ListApproved(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, dto.NewCategoryResponse(&categories[i]))
	}
	return items, nil
}

// UpdateStatus - только админ (проверяется в handler через RequireRoles).
func (s *CategoryService) UpdateStatus(ctx context.Context, categoryID string, status models.CategoryStatus) (*dto.CategoryResponse, error) {
	if err := s.categoryRepo.UpdateStatus(ctx, categoryID, status); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, apperrors.ErrNotFound(err, "category", "Category not found")
		}
		return nil, apperrors.InternalError(err)
	}

	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewCategoryResponse(category)
	return &resp, nil
}
