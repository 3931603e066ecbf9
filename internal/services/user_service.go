package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/internal/storage"
	"jobhub_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type UserService struct {
	userRepo repositories.UserRepository
	storage  storage.Storage
}

func NewUserService(userRepo repositories.UserRepository, storage storage.Storage) *UserService {
	return &UserService{
		userRepo: userRepo,
		storage:  storage,
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.findActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.findActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Age != nil {
		user.Age = req.Age
	}
	if req.Gender != nil {
		user.Gender = req.Gender
	}
	if req.Address != nil {
		user.Address = req.Address
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

// UploadAvatar сохраняет аватар через storage capability и обновляет URL.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, filename string, reader io.Reader) (*dto.UserResponse, error) {
	user, err := s.findActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return nil, apperrors.NewBadRequestError("Unsupported avatar file type")
	}

	path := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.NewString(), ext)
	url, err := s.storage.Save(ctx, path, reader)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user.Avatar = &url
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

// DeleteAccount - soft delete: статус DELETED терминален, все дальнейшие
// операции пользователя блокируются при верификации токена.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if _, err := s.findActive(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.UpdateStatus(ctx, userID, models.UserStatusDeleted); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserService) findActive(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Status == models.UserStatusDeleted {
		return nil, apperrors.ErrUserNotActive
	}
	return user, nil
}
