package repositories

import (
	"context"
	"errors"
	"time"

	"jobhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobFilter struct {
	Status   models.JobStatus
	Page     int
	PageSize int
}

// NearbyJob - job с рассчитанной дистанцией (black-box distance query)
type NearbyJob struct {
	models.Job
	DistanceMeters float64 `json:"distanceMeters"`
}

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	// FindByID не возвращает soft-deleted записи (gorm default scope)
	FindByID(ctx context.Context, id string) (*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, filter JobFilter) ([]models.Job, int64, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Job, error)
	ListNearby(ctx context.Context, lat, lng, radiusKm float64) ([]NearbyJob, error)
	CancelExpired(ctx context.Context, now time.Time) (int64, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepository) FindByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Update(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

// SoftDelete помечает job удаленным и переводит в CANCELLED.
// Сообщения и отклики не каскадируются - по ним закрывается только gate.
func (r *jobRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Job{}).
			Where("id = ?", id).
			Update("status", models.JobStatusCancelled)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrJobNotFound
		}
		return tx.Delete(&models.Job{}, "id = ?", id).Error
	})
}

func (r *jobRepository) List(ctx context.Context, filter JobFilter) ([]models.Job, int64, error) {
	status := filter.Status
	if status == "" {
		status = models.JobStatusOpen
	}

	query := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("status = ?", status)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	var jobs []models.Job
	err := query.
		Preload("Category").
		Preload("Owner").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where("created_by = ?", ownerID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

// ListNearby возвращает открытые jobs в радиусе radiusKm,
// отсортированные по дистанции (haversine).
func (r *jobRepository) ListNearby(ctx context.Context, lat, lng, radiusKm float64) ([]NearbyJob, error) {
	radiusMeters := radiusKm * 1000

	var jobs []NearbyJob
	err := r.db.WithContext(ctx).Raw(`
		SELECT j.*,
			6371000 * 2 * asin(sqrt(
				power(sin(radians(j.latitude - ?) / 2), 2) +
				cos(radians(?)) * cos(radians(j.latitude)) *
				power(sin(radians(j.longitude - ?) / 2), 2)
			)) AS distance_meters
		FROM jobs j
		WHERE j.deleted_at IS NULL
		  AND j.status = 'OPEN'
		  AND 6371000 * 2 * asin(sqrt(
				power(sin(radians(j.latitude - ?) / 2), 2) +
				cos(radians(?)) * cos(radians(j.latitude)) *
				power(sin(radians(j.longitude - ?) / 2), 2)
			)) <= ?
		ORDER BY distance_meters ASC
	`, lat, lat, lng, lat, lat, lng, radiusMeters).Scan(&jobs).Error
	return jobs, err
}

// CancelExpired закрывает открытые jobs с прошедшим due_date (для worker)
func (r *jobRepository) CancelExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", models.JobStatusOpen, now).
		Update("status", models.JobStatusCancelled)
	return result.RowsAffected, result.Error
}
