package services

import (
	"context"
	"errors"
	"sync"

	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"
)

// Broadcaster рассылает событие всем участникам job-комнаты.
// Реализуется ws.Manager; в тестах подменяется фейком.
type Broadcaster interface {
	BroadcastToJob(jobID string, payload any)
}

// ChatService - единственный арбитр chat-доступа. И HTTP-история, и
// realtime-канал ходят через Authorize/SendMessage: никакой
// продублированной авторизации на стороне транспорта.
type ChatService struct {
	messageRepo     repositories.ChatMessageRepository
	jobRepo         repositories.JobRepository
	applicationRepo repositories.ApplicationRepository
	broadcaster     Broadcaster

	// jobLocks сериализует authorize+persist+broadcast по каждому job.
	// Разные jobs идут полностью параллельно.
	jobLocks sync.Map // jobID -> *sync.Mutex
}

func NewChatService(
	messageRepo repositories.ChatMessageRepository,
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
	broadcaster Broadcaster,
) *ChatService {
	return &ChatService{
		messageRepo:     messageRepo,
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		broadcaster:     broadcaster,
	}
}

func (s *ChatService) lockJob(jobID string) *sync.Mutex {
	mu, _ := s.jobLocks.LoadOrStore(jobID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Authorize проверяет, могут ли две стороны переписываться по job:
// ровно одна из них - владелец job, вторая - ACCEPTED исполнитель.
// Возвращает job как контекст для вызывающего.
func (s *ChatService) Authorize(ctx context.Context, jobID, partyA, partyB string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	aIsOwner := job.CreatedBy == partyA
	bIsOwner := job.CreatedBy == partyB

	if aIsOwner == bIsOwner {
		// либо никто не владелец, либо оба (a == b == owner)
		return nil, apperrors.ErrChatOnlyWithOwner
	}

	applicantID := partyA
	if aIsOwner {
		applicantID = partyB
	}

	if _, err := s.applicationRepo.FindAcceptedByJob(ctx, jobID, applicantID); err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrChatOnlyWithAccepted
		}
		return nil, apperrors.InternalError(err)
	}

	return job, nil
}

// GetJobMessages возвращает историю чата job для viewer-а.
// Владелец видит всю историю job; ACCEPTED исполнитель - только свою
// переписку с владельцем; остальным отказ.
func (s *ChatService) GetJobMessages(ctx context.Context, jobID, viewerID string) ([]dto.ChatMessageResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	var messages []models.ChatMessage
	if job.CreatedBy == viewerID {
		messages, err = s.messageRepo.ListByJob(ctx, jobID)
	} else {
		if _, aerr := s.applicationRepo.FindAcceptedByJob(ctx, jobID, viewerID); aerr != nil {
			if errors.Is(aerr, repositories.ErrApplicationNotFound) {
				return nil, apperrors.ErrChatNotAuthorized
			}
			return nil, apperrors.InternalError(aerr)
		}
		messages, err = s.messageRepo.ListByJobBetween(ctx, jobID, job.CreatedBy, viewerID)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ChatMessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, *dto.NewChatMessageResponse(&messages[i]))
	}
	return responses, nil
}

// SendMessage - единый путь отправки для ws и HTTP.
// Под per-job блокировкой: authorize -> persist -> broadcast. Порядок
// persist определяет порядок доставки; при отказе gate ничего не
// сохраняется и не рассылается.
func (s *ChatService) SendMessage(ctx context.Context, senderID string, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error) {
	mu := s.lockJob(req.JobID)
	mu.Lock()
	defer mu.Unlock()

	if _, err := s.Authorize(ctx, req.JobID, senderID, req.ReceiverID); err != nil {
		return nil, err
	}

	message := &models.ChatMessage{
		JobID:      req.JobID,
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Message:    req.Message,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewChatMessageResponse(message)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToJob(req.JobID, resp)
	}
	return resp, nil
}
