package services

import (
	"context"
	"errors"

	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"
)

// ApplicationService enforces the job application lifecycle:
// PENDING -> ACCEPTED | REJECTED, с переводом job в IN_PROGRESS при accept.
type ApplicationService struct {
	applicationRepo repositories.ApplicationRepository
	jobRepo         repositories.JobRepository
	userRepo        repositories.UserRepository
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
	}
}

// Apply создает PENDING отклик на открытый job.
func (s *ApplicationService) Apply(ctx context.Context, applicantID, jobID string) (*dto.ApplicationResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrOpenJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if job.Status != models.JobStatusOpen {
		return nil, apperrors.ErrOpenJobNotFound
	}

	if job.CreatedBy == applicantID {
		return nil, apperrors.ErrCannotApplyToOwnJob
	}

	application := &models.JobApplication{
		JobID:       jobID,
		ApplicantID: applicantID,
		Status:      models.ApplicationStatusPending,
	}

	if err := s.applicationRepo.Create(ctx, application); err != nil {
		if errors.Is(err, repositories.ErrApplicationAlreadyExists) {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewApplicationResponse(application)
	return &resp, nil
}

// Decide обрабатывает решение владельца job (или админа) по PENDING отклику.
// ACCEPTED: одна транзакция на две строки - application ACCEPTED,
// job IN_PROGRESS. REJECTED: только отклик, job остается OPEN.
func (s *ApplicationService) Decide(
	ctx context.Context,
	actorID string,
	actorRole models.UserRole,
	applicationID string,
	decision models.ApplicationStatus,
) (*dto.ApplicationResponse, error) {
	if decision != models.ApplicationStatusAccepted && decision != models.ApplicationStatusRejected {
		return nil, apperrors.ErrInvalidOperation("application", "Decision must be ACCEPTED or REJECTED")
	}

	application, err := s.applicationRepo.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	job, err := s.jobRepo.FindByID(ctx, application.JobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if actorRole != models.UserRoleAdmin && job.CreatedBy != actorID {
		return nil, apperrors.NewForbiddenError("application", "Only job owner can update application status")
	}

	// Предварительная проверка; гонки ловит повторная проверка
	// внутри транзакции / условного UPDATE.
	if application.Status != models.ApplicationStatusPending {
		return nil, apperrors.ErrApplicationNotPending
	}

	if decision == models.ApplicationStatusAccepted {
		if err := s.applicationRepo.AcceptPending(ctx, applicationID, application.JobID); err != nil {
			switch {
			case errors.Is(err, repositories.ErrApplicationNotPending),
				errors.Is(err, repositories.ErrJobNotOpen):
				return nil, apperrors.ErrApplicationNotPending
			case errors.Is(err, repositories.ErrApplicationNotFound):
				return nil, apperrors.ErrApplicationNotFound
			default:
				return nil, apperrors.InternalError(err)
			}
		}
		application.Status = models.ApplicationStatusAccepted
	} else {
		if err := s.applicationRepo.RejectPending(ctx, applicationID); err != nil {
			if errors.Is(err, repositories.ErrApplicationNotPending) {
				return nil, apperrors.ErrApplicationNotPending
			}
			return nil, apperrors.InternalError(err)
		}
		application.Status = models.ApplicationStatusRejected
	}

	resp := dto.NewApplicationResponse(application)
	return &resp, nil
}

// ListByJob возвращает отклики job; только владелец или админ.
func (s *ApplicationService) ListByJob(
	ctx context.Context,
	actorID string,
	actorRole models.UserRole,
	jobID string,
) ([]dto.ApplicationResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if actorRole != models.UserRoleAdmin && job.CreatedBy != actorID {
		return nil, apperrors.NewForbiddenError("application", "Only job owner can view applications")
	}

	applications, err := s.applicationRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		responses = append(responses, dto.NewApplicationResponse(&applications[i]))
	}
	return responses, nil
}

// ListByApplicant возвращает отклики пользователя.
func (s *ApplicationService) ListByApplicant(ctx context.Context, applicantID string) ([]dto.ApplicationResponse, error) {
	applications, err := s.applicationRepo.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		responses = append(responses, dto.NewApplicationResponse(&applications[i]))
	}
	return responses, nil
}
