package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewModel struct {
	ReviewID          uuid.UUID      `gorm:"column:review_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"review_id"`
	ReviewAdventureID uuid.UUID      `gorm:"column:review_adventure_id;type:uuid;not null;uniqueIndex:uq_reviews_user_adventure,priority:2;index" json:"review_adventure_id"`
	ReviewUserID      uuid.UUID      `gorm:"column:review_user_id;type:uuid;not null;uniqueIndex:uq_reviews_user_adventure,priority:1" json:"review_user_id"`
	ReviewRating      int            `gorm:"column:review_rating;not null;check:review_rating BETWEEN 1 AND 5" json:"review_rating"`
	ReviewComment     string         `gorm:"column:review_comment;type:text" json:"review_comment"`
	ReviewCreatedAt   time.Time      `gorm:"column:review_created_at;autoCreateTime" json:"review_created_at"`
	ReviewUpdatedAt   time.Time      `gorm:"column:review_updated_at;autoUpdateTime" json:"review_updated_at"`
	ReviewDeletedAt   gorm.DeletedAt `gorm:"column:review_deleted_at;index" json:"-"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}
