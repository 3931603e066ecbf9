package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"

	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type JobService struct {
	jobRepo      repositories.JobRepository
	categoryRepo repositories.CategoryRepository
}

func NewJobService(jobRepo repositories.JobRepository, categoryRepo repositories.CategoryRepository) *JobService {
	return &JobService{
		jobRepo:      jobRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *JobService) ensureCategoryApproved(ctx context.Context, categoryID string) error {
	_, err := s.categoryRepo.FindApprovedByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return apperrors.ErrCategoryNotApproved
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// CreateJob создает OPEN job; категория должна быть APPROVED.
func (s *JobService) CreateJob(ctx context.Context, ownerID string, ownerRole models.UserRole, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	if ownerRole != models.UserRolePoster && ownerRole != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if err := s.ensureCategoryApproved(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	job := &models.Job{
		CreatedBy:   ownerID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		JobType:     req.JobType,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Address:     req.Address,
		DueDate:     req.DueDate,
		Status:      models.JobStatusOpen,
	}

	if len(req.Images) > 0 {
		imagesJSON, err := json.Marshal(req.Images)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		job.Images = datatypes.JSON(imagesJSON)
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewJobResponse(job)
	return &resp, nil
}

// UpdateJob - только владелец или админ.
func (s *JobService) UpdateJob(ctx context.Context, jobID, actorID string, actorRole models.UserRole, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if actorRole != models.UserRoleAdmin && job.CreatedBy != actorID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.CategoryID != nil {
		if err := s.ensureCategoryApproved(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		job.CategoryID = *req.CategoryID
	}
	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Budget != nil {
		job.Budget = *req.Budget
	}
	if req.JobType != nil {
		job.JobType = *req.JobType
	}
	if req.Latitude != nil {
		job.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		job.Longitude = *req.Longitude
	}
	if req.Address != nil {
		job.Address = req.Address
	}
	if req.DueDate != nil {
		job.DueDate = req.DueDate
	}
	if req.Images != nil {
		imagesJSON, err := json.Marshal(req.Images)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		job.Images = datatypes.JSON(imagesJSON)
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewJobResponse(job)
	return &resp, nil
}

// DeleteJob - soft delete: job помечается удаленным и CANCELLED.
// Существующие отклики и сообщения не трогаем - закрывается только gate.
func (s *JobService) DeleteJob(ctx context.Context, jobID, actorID string, actorRole models.UserRole) error {
	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return err
	}

	if actorRole != models.UserRoleAdmin && job.CreatedBy != actorID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.jobRepo.SoftDelete(ctx, jobID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *JobService) GetJob(ctx context.Context, jobID string) (*dto.JobResponse, error) {
	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewJobResponse(job)
	return &resp, nil
}

func (s *JobService) ListJobs(ctx context.Context, filter repositories.JobFilter) (*dto.JobListResponse, error) {
	jobs, total, err := s.jobRepo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, dto.NewJobResponse(&jobs[i]))
	}

	return &dto.JobListResponse{
		Jobs: items,
		Meta: dto.JobListMeta{
			Total:      total,
			Page:       page,
			Limit:      pageSize,
			TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
		},
	}, nil
}

func (s *JobService) ListMyJobs(ctx context.Context, ownerID string) ([]dto.JobResponse, error) {
	jobs, err := s.jobRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, dto.NewJobResponse(&jobs[i]))
	}
	return items, nil
}

// ListNearby - black-box distance query по открытым jobs.
func (s *JobService) ListNearby(ctx context.Context, lat, lng, radiusKm float64) ([]dto.NearbyJobResponse, error) {
	if radiusKm <= 0 {
		radiusKm = 10
	}

	jobs, err := s.jobRepo.ListNearby(ctx, lat, lng, radiusKm)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.NearbyJobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, dto.NearbyJobResponse{
			JobResponse:    dto.NewJobResponse(&jobs[i].Job),
			DistanceMeters: jobs[i].DistanceMeters,
		})
	}
	return items, nil
}

func (s *JobService) findJob(ctx context.Context, jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}
