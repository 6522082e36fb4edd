package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DifficultyEasy     = "easy"
	DifficultyModerate = "moderate"
	DifficultyHard     = "hard"
	DifficultyExtreme  = "extreme"
)

type AdventureModel struct {
	AdventureID           uuid.UUID      `gorm:"column:adventure_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"adventure_id"`
	AdventureTitle        string         `gorm:"column:adventure_title;type:varchar(255);not null" json:"adventure_title"`
	AdventureSlug         string         `gorm:"column:adventure_slug;type:varchar(255);uniqueIndex:uq_adventures_slug" json:"adventure_slug"`
	AdventureDescription  string         `gorm:"column:adventure_description;type:text" json:"adventure_description"`
	AdventureLocation     string         `gorm:"column:adventure_location;type:varchar(255)" json:"adventure_location"`
	AdventureDifficulty   string         `gorm:"column:adventure_difficulty;type:varchar(20);not null;default:'moderate'" json:"adventure_difficulty"`
	AdventureDurationDays int            `gorm:"column:adventure_duration_days;not null;default:1" json:"adventure_duration_days"`
	AdventurePrice        int64          `gorm:"column:adventure_price;not null;default:0" json:"adventure_price"`
	AdventureImages       pq.StringArray `gorm:"column:adventure_images;type:text[]" json:"adventure_images"`
	AdventureTags         pq.StringArray `gorm:"column:adventure_tags;type:text[]" json:"adventure_tags"`
	AdventureItinerary    datatypes.JSON `gorm:"column:adventure_itinerary;type:jsonb" json:"adventure_itinerary"`
	AdventureGuideID      uuid.UUID      `gorm:"column:adventure_guide_id;type:uuid;not null;index" json:"adventure_guide_id"`
	AdventureIsPublished  bool           `gorm:"column:adventure_is_published;not null;default:false" json:"adventure_is_published"`
	AdventureCreatedAt    time.Time      `gorm:"column:adventure_created_at;autoCreateTime" json:"adventure_created_at"`
	AdventureUpdatedAt    time.Time      `gorm:"column:adventure_updated_at;autoUpdateTime" json:"adventure_updated_at"`
	AdventureDeletedAt    gorm.DeletedAt `gorm:"column:adventure_deleted_at;index" json:"-"`
}

func (AdventureModel) TableName() string {
	return "adventures"
}
