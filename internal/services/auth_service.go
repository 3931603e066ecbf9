package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"jobhub_backend/internal/auth"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var usernameCleanup = regexp.MustCompile(`[^a-z0-9._]`)
var usernameCollapse = regexp.MustCompile(`_{2,}`)

// AuthService - локальный identity provider: регистрация, вход,
// выпуск и проверка access-токенов.
type AuthService struct {
	userRepo      repositories.UserRepository
	tokens        *auth.TokenManager
	tokenTTL      time.Duration
	verifyTimeout time.Duration
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenManager,
	tokenTTLMinutes int,
	verifyTimeout time.Duration,
) *AuthService {
	if verifyTimeout <= 0 {
		verifyTimeout = 3 * time.Second
	}
	return &AuthService{
		userRepo:      userRepo,
		tokens:        tokens,
		tokenTTL:      time.Duration(tokenTTLMinutes) * time.Minute,
		verifyTimeout: verifyTimeout,
	}
}

func normalizeUsername(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = usernameCleanup.ReplaceAllString(s, "_")
	s = usernameCollapse.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 30 {
		s = s[:30]
	}
	return s
}

func usernameFromEmail(email string) string {
	local := strings.SplitN(email, "@", 2)[0]
	if normalized := normalizeUsername(local); normalized != "" {
		return normalized
	}
	return "user"
}

// makeUniqueUsername подбирает свободный username на базе запрошенного
func (s *AuthService) makeUniqueUsername(ctx context.Context, requested, email string) (string, error) {
	base := normalizeUsername(requested)
	if base == "" {
		base = usernameFromEmail(email)
	}

	candidate := base
	for index := 1; ; index++ {
		_, err := s.userRepo.FindByUsername(ctx, candidate)
		if errors.Is(err, repositories.ErrUserNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		suffix := fmt.Sprintf("_%d", index+1)
		cut := 30 - len(suffix)
		if cut < 1 {
			cut = 1
		}
		if len(base) > cut {
			candidate = base[:cut] + suffix
		} else {
			candidate = base + suffix
		}
	}
}

// Register создает пользователя с ролью JOB_POSTER или JOB_PICKER.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !emailRegex.MatchString(email) {
		return nil, apperrors.NewBadRequestError("Please provide a valid email address")
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	role := models.UserRolePicker
	if strings.ToUpper(req.Role) == string(models.UserRolePoster) {
		role = models.UserRolePoster
	}

	phone := strings.TrimSpace(req.Phone)

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.userRepo.FindByPhone(ctx, phone); err == nil {
		return nil, apperrors.ErrPhoneAlreadyExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if requested := normalizeUsername(req.Username); requested != "" {
		if _, err := s.userRepo.FindByUsername(ctx, requested); err == nil {
			return nil, apperrors.ErrUsernameAlreadyExists
		} else if !errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.InternalError(err)
		}
	}

	username, err := s.makeUniqueUsername(ctx, req.Username, email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Username:     username,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         role,
		Status:       models.UserStatusActive,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return s.buildAuthResponse(user)
}

// Login - вход по email или username.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	identifier := strings.ToLower(strings.TrimSpace(req.Identifier))
	if identifier == "" {
		return nil, apperrors.NewBadRequestError("Email or username is required")
	}

	var user *models.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.userRepo.FindByEmail(ctx, identifier)
	} else {
		user, err = s.userRepo.FindByUsername(ctx, normalizeUsername(identifier))
	}
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if user.Status == models.UserStatusDeleted {
		return nil, apperrors.ErrUserNotActive
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.buildAuthResponse(user)
}

func (s *AuthService) buildAuthResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		User:        dto.NewUserResponse(user),
		AccessToken: token,
		ExpiresIn:   int(s.tokenTTL.Seconds()),
	}, nil
}

// ResolveUserFromToken верифицирует credential и возвращает principal.
// Fail-closed: любая ошибка (подпись, срок, таймаут стора, DELETED
// пользователь) = отказ. На transient-сбой стора - один повтор в рамках
// общего verify-таймаута.
func (s *AuthService) ResolveUserFromToken(ctx context.Context, token string) (*dto.AuthenticatedUser, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	vctx, cancel := context.WithTimeout(ctx, s.verifyTimeout)
	defer cancel()

	user, err := s.userRepo.FindByID(vctx, claims.UserID)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) && vctx.Err() == nil {
		user, err = s.userRepo.FindByID(vctx, claims.UserID)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotActive
		}
		return nil, apperrors.ErrUserNotActive
	}

	if user.Status == models.UserStatusDeleted {
		return nil, apperrors.ErrUserNotActive
	}

	return &dto.AuthenticatedUser{
		ID:    user.ID,
		Role:  user.Role,
		Email: user.Email,
	}, nil
}
