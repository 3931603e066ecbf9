package repositories

import (
	"context"
	"errors"

	"jobhub_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrApplicationNotFound      = errors.New("application not found")
	ErrApplicationAlreadyExists = errors.New("application already exists")
	ErrApplicationNotPending    = errors.New("application is not pending")
	ErrJobNotOpen               = errors.New("job is not open")
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *models.JobApplication) error
	FindByID(ctx context.Context, id string) (*models.JobApplication, error)
	FindAcceptedByJob(ctx context.Context, jobID, applicantID string) (*models.JobApplication, error)
	ListByJob(ctx context.Context, jobID string) ([]models.JobApplication, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]models.JobApplication, error)
	// AcceptPending атомарно (одна транзакция, блокировка строк):
	// application PENDING -> ACCEPTED и job OPEN -> IN_PROGRESS.
	// Проигравший гонку accept получает ErrApplicationNotPending или ErrJobNotOpen.
	AcceptPending(ctx context.Context, applicationID, jobID string) error
	// RejectPending переводит PENDING -> REJECTED; job не трогает
	RejectPending(ctx context.Context, applicationID string) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *models.JobApplication) error {
	err := r.db.WithContext(ctx).Create(app).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrApplicationAlreadyExists
	}
	return err
}

func (r *applicationRepository) FindByID(ctx context.Context, id string) (*models.JobApplication, error) {
	var app models.JobApplication
	err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) FindAcceptedByJob(ctx context.Context, jobID, applicantID string) (*models.JobApplication, error) {
	var app models.JobApplication
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND applicant_id = ? AND status = ?",
			jobID, applicantID, models.ApplicationStatusAccepted).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID string) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Preload("Applicant").
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	err := r.db.WithContext(ctx).
		Where("applicant_id = ?", applicantID).
		Preload("Job").
		Preload("Job.Category").
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) AcceptPending(ctx context.Context, applicationID, jobID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Перепроверяем статусы ПОСЛЕ захвата блокировок: конкурирующий
		// accept по другому отклику того же job обязан здесь упасть.
		var app models.JobApplication
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&app, "id = ?", applicationID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}
		if app.Status != models.ApplicationStatusPending {
			return ErrApplicationNotPending
		}

		var job models.Job
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&job, "id = ?", jobID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrJobNotOpen
			}
			return err
		}
		if job.Status != models.JobStatusOpen {
			return ErrJobNotOpen
		}

		err = tx.Model(&models.JobApplication{}).
			Where("id = ?", applicationID).
			Update("status", models.ApplicationStatusAccepted).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.Job{}).
			Where("id = ?", jobID).
			Update("status", models.JobStatusInProgress).Error
	})
}

func (r *applicationRepository) RejectPending(ctx context.Context, applicationID string) error {
	result := r.db.WithContext(ctx).
		Model(&models.JobApplication{}).
		Where("id = ? AND status = ?", applicationID, models.ApplicationStatusPending).
		Update("status", models.ApplicationStatusRejected)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotPending
	}
	return nil
}
