package dto

import (
	"time"

	"jobhub_backend/internal/models"
)

type UserResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	Role      models.UserRole   `json:"role"`
	Status    models.UserStatus `json:"status"`
	Avatar    *string           `json:"avatar,omitempty"`
	Bio       *string           `json:"bio,omitempty"`
	Age       *int              `json:"age,omitempty"`
	Gender    *string           `json:"gender,omitempty"`
	Address   *string           `json:"address,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Bio     *string `json:"bio"`
	Age     *int    `json:"age" validate:"omitempty,gt=0"`
	Gender  *string `json:"gender"`
	Address *string `json:"address"`
}

func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		Status:    user.Status,
		Avatar:    user.Avatar,
		Bio:       user.Bio,
		Age:       user.Age,
		Gender:    user.Gender,
		Address:   user.Address,
		CreatedAt: user.CreatedAt,
	}
}
