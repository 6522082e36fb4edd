package dto

import (
	"time"

	"github.com/google/uuid"

	"tripku_backend/internals/features/users/user/model"
)

// ================== REQUEST ==================

type UpdateProfileRequest struct {
	UserName      *string `json:"user_name" validate:"omitempty,min=3,max=50"`
	UserBio       *string `json:"user_bio" validate:"omitempty,max=2000"`
	UserAvatarURL *string `json:"user_avatar_url" validate:"omitempty,url,max=512"`
}

// ================== RESPONSE ==================

type UserResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	UserName      string    `json:"user_name"`
	UserEmail     string    `json:"user_email"`
	UserRole      string    `json:"user_role"`
	UserBio       string    `json:"user_bio,omitempty"`
	UserAvatarURL string    `json:"user_avatar_url,omitempty"`
	UserIsActive  bool      `json:"user_is_active"`
	UserCreatedAt string    `json:"user_created_at"`
}

// ================ CONVERSION =================

func ToUserResponse(m *model.UserModel) *UserResponse {
	return &UserResponse{
		UserID:        m.UserID,
		UserName:      m.UserName,
		UserEmail:     m.UserEmail,
		UserRole:      m.UserRole,
		UserBio:       m.UserBio,
		UserAvatarURL: m.UserAvatarURL,
		UserIsActive:  m.UserIsActive,
		UserCreatedAt: m.UserCreatedAt.Format(time.RFC3339),
	}
}

func ToUserResponseList(models []model.UserModel) []UserResponse {
	var result []UserResponse
	for i := range models {
		result = append(result, *ToUserResponse(&models[i]))
	}
	return result
}
