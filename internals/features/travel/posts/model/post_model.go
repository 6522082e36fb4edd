package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type PostModel struct {
	PostID          uuid.UUID      `gorm:"column:post_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"post_id"`
	PostTitle       string         `gorm:"column:post_title;type:varchar(255);not null" json:"post_title"`
	PostSlug        string         `gorm:"column:post_slug;type:varchar(255);uniqueIndex:uq_posts_slug" json:"post_slug"`
	PostBody        string         `gorm:"column:post_body;type:text;not null" json:"post_body"`
	PostCoverURL    string         `gorm:"column:post_cover_url;type:varchar(512)" json:"post_cover_url"`
	PostTags        pq.StringArray `gorm:"column:post_tags;type:text[]" json:"post_tags"`
	PostAuthorID    uuid.UUID      `gorm:"column:post_author_id;type:uuid;not null;index" json:"post_author_id"`
	PostIsPublished bool           `gorm:"column:post_is_published;not null;default:false" json:"post_is_published"`
	PostPublishedAt *time.Time     `gorm:"column:post_published_at" json:"post_published_at,omitempty"`
	PostCreatedAt   time.Time      `gorm:"column:post_created_at;autoCreateTime" json:"post_created_at"`
	PostUpdatedAt   time.Time      `gorm:"column:post_updated_at;autoUpdateTime" json:"post_updated_at"`
	PostDeletedAt   gorm.DeletedAt `gorm:"column:post_deleted_at;index" json:"-"`
}

func (PostModel) TableName() string {
	return "posts"
}
