package repositories

import (
	"context"
	"errors"

	"jobhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id string) (*models.Category, error)
	FindApprovedByID(ctx context.Context, id string) (*models.Category, error)
	ListApproved(ctx context.Context, search string) ([]models.Category, error)
	UpdateStatus(ctx context.Context, id string, status models.CategoryStatus) error
}

type categoryRepository struct {
	db   *gorm.DB
	caps SchemaCapabilities
}

func NewCategoryRepository(db *gorm.DB, caps SchemaCapabilities) CategoryRepository {
	return &categoryRepository{db: db, caps: caps}
}

// columns - набор колонок согласно capabilities схемы
func (r *categoryRepository) columns() []string {
	cols := []string{"id", "name", "status", "created_by", "created_at", "updated_at"}
	if r.caps.CategoryDescription {
		cols = append(cols, "description")
	}
	return cols
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	tx := r.db.WithContext(ctx)
	if !r.caps.CategoryDescription {
		category.Description = nil
		tx = tx.Omit("description")
	}
	err := tx.Create(category).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrCategoryAlreadyExists
	}
	return err
}

func (r *categoryRepository) FindByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Select(r.columns()).
		First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindApprovedByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Select(r.columns()).
		Where("id = ? AND status = ?", id, models.CategoryStatusApproved).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListApproved(ctx context.Context, search string) ([]models.Category, error) {
	query := r.db.WithContext(ctx).
		Select(r.columns()).
		Where("status = ?", models.CategoryStatusApproved)

	if search != "" {
		if r.caps.CategoryDescription {
			query = query.Where("name ILIKE ? OR description ILIKE ?", "%"+search+"%", "%"+search+"%")
		} else {
			query = query.Where("name ILIKE ?", "%"+search+"%")
		}
	}

	var categories []models.Category
	err := query.Order("created_at DESC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) UpdateStatus(ctx context.Context, id string, status models.CategoryStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
