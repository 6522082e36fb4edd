package model

import (
	"time"

	"github.com/google/uuid"
)

// Call statuses. Completed and cancelled are terminal; expired is set by the
// sweep when a scheduled call's start time has passed.
const (
	CallScheduled = "scheduled"
	CallCompleted = "completed"
	CallCancelled = "cancelled"
	CallExpired   = "expired"
)

// DefaultCallDuration is used when no end time is supplied.
const DefaultCallDuration = 30 * time.Minute

// TripPlanningCallModel is a one-on-one consultation call. The platform
// models a single shared meeting track: among scheduled calls no two may
// overlap in [start, end).
type TripPlanningCallModel struct {
	CallID              uuid.UUID  `gorm:"column:call_id;primaryKey;type:uuid" json:"call_id"`
	CallAdventurerID    uuid.UUID  `gorm:"column:call_adventurer_id;type:uuid;not null;index" json:"call_adventurer_id"`
	CallTopic           string     `gorm:"column:call_topic;type:varchar(255)" json:"call_topic"`
	CallNotes           string     `gorm:"column:call_notes;type:text" json:"call_notes"`
	CallStartTime       time.Time  `gorm:"column:call_start_time;not null;index" json:"call_start_time"`
	CallEndTime         time.Time  `gorm:"column:call_end_time;not null" json:"call_end_time"`
	CallStatus          string     `gorm:"column:call_status;type:varchar(20);not null;default:'scheduled';index" json:"call_status"`
	CallMeetingLink     string     `gorm:"column:call_meeting_link;size:512" json:"call_meeting_link"`
	CallCalendarEventID *string    `gorm:"column:call_calendar_event_id;size:255" json:"call_calendar_event_id"`
	CallCancelReason    *string    `gorm:"column:call_cancel_reason;type:text" json:"call_cancel_reason"`
	CallCreatedAt       time.Time  `gorm:"column:call_created_at;autoCreateTime" json:"call_created_at"`
	CallUpdatedAt       time.Time  `gorm:"column:call_updated_at;autoUpdateTime" json:"call_updated_at"`
}

func (TripPlanningCallModel) TableName() string {
	return "trip_planning_calls"
}
