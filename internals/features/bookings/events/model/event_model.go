package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventModel struct {
	EventID          uuid.UUID      `gorm:"column:event_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"event_id"`
	EventAdventureID *uuid.UUID     `gorm:"column:event_adventure_id;type:uuid;index" json:"event_adventure_id"`
	EventTitle       string         `gorm:"column:event_title;type:varchar(255);not null" json:"event_title"`
	EventSlug        string         `gorm:"column:event_slug;type:varchar(255);uniqueIndex:uq_events_slug" json:"event_slug"`
	EventDescription string         `gorm:"column:event_description;type:text" json:"event_description"`
	EventLocation    string         `gorm:"column:event_location;type:varchar(255)" json:"event_location"`
	EventPrice       int64          `gorm:"column:event_price;not null;default:0" json:"event_price"` // smallest currency unit; 0 = free
	EventSpotTotal   int            `gorm:"column:event_spot_total;not null" json:"event_spot_total"`
	EventSpotLeft    int            `gorm:"column:event_spot_left;not null;check:event_spot_left >= 0" json:"event_spot_left"`
	EventDate        time.Time      `gorm:"column:event_date;not null;index" json:"event_date"`
	EventJoinTill    time.Time      `gorm:"column:event_join_till;not null" json:"event_join_till"`
	EventCreatedBy   uuid.UUID      `gorm:"column:event_created_by;type:uuid" json:"event_created_by"`
	EventCreatedAt   time.Time      `gorm:"column:event_created_at;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt   time.Time      `gorm:"column:event_updated_at;autoUpdateTime" json:"event_updated_at"`
	EventDeletedAt   gorm.DeletedAt `gorm:"column:event_deleted_at;index" json:"-"`
}

func (EventModel) TableName() string {
	return "events"
}

// IsExpired reports whether the registration window has closed.
func (e *EventModel) IsExpired(now time.Time) bool {
	return now.After(e.EventJoinTill)
}

// IsFull reports whether no spots remain.
func (e *EventModel) IsFull() bool {
	return e.EventSpotLeft <= 0
}
