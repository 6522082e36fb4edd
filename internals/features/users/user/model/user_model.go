package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the users table.
type UserModel struct {
	UserID        uuid.UUID      `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`
	UserName      string         `gorm:"column:user_name;size:50;not null" json:"user_name" validate:"required,min=3,max=50"`
	UserEmail     string         `gorm:"column:user_email;size:255;unique;not null" json:"user_email" validate:"required,email"`
	UserPassword  string         `gorm:"column:user_password;not null" json:"-" validate:"required,min=8"`
	UserRole      string         `gorm:"column:user_role;type:varchar(20);not null;default:'user'" json:"user_role" validate:"omitempty,oneof=user guide admin owner"`
	UserBio       string         `gorm:"column:user_bio;type:text" json:"user_bio"`
	UserAvatarURL string         `gorm:"column:user_avatar_url;size:512" json:"user_avatar_url"`
	UserIsActive  bool           `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`
	UserCreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"-"`
}

func (UserModel) TableName() string {
	return "users"
}

// SetDefaultValues fills defaults before validation.
func (u *UserModel) SetDefaultValues() {
	if u.UserRole == "" {
		u.UserRole = "user"
	}
}
