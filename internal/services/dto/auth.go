package dto

import "jobhub_backend/internal/models"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username"`
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=JOB_POSTER JOB_PICKER"`
}

type LoginRequest struct {
	// Identifier - email или username
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User        *UserResponse `json:"user"`
	AccessToken string        `json:"accessToken"`
	ExpiresIn   int           `json:"expiresIn"` // секунды
}

// AuthenticatedUser - principal, прошедший верификацию токена
type AuthenticatedUser struct {
	ID    string          `json:"id"`
	Role  models.UserRole `json:"role"`
	Email string          `json:"email"`
}
