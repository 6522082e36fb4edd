package model

import (
	"time"

	"github.com/google/uuid"
)

// Registration statuses. A cancelled row is kept (soft state change) so the
// same user can re-join later by flipping the row back to confirmed.
const (
	RegistrationConfirmed = "confirmed"
	RegistrationCancelled = "cancelled"
	RegistrationAttended  = "attended"
)

// EventRegistrationModel is the join record. At most one row exists per
// (user, event) pair, enforced by the composite unique index.
type EventRegistrationModel struct {
	EventRegistrationID        uuid.UUID `gorm:"column:event_registration_id;primaryKey;type:uuid" json:"event_registration_id"`
	EventRegistrationEventID   uuid.UUID `gorm:"column:event_registration_event_id;type:uuid;not null;uniqueIndex:uq_event_registrations_user_event" json:"event_registration_event_id"`
	EventRegistrationUserID    uuid.UUID `gorm:"column:event_registration_user_id;type:uuid;not null;uniqueIndex:uq_event_registrations_user_event" json:"event_registration_user_id"`
	EventRegistrationStatus    string    `gorm:"column:event_registration_status;type:varchar(20);not null;default:'confirmed'" json:"event_registration_status"`
	EventRegistrationCreatedAt time.Time `gorm:"column:event_registration_created_at;autoCreateTime" json:"event_registration_created_at"`
	EventRegistrationUpdatedAt time.Time `gorm:"column:event_registration_updated_at;autoUpdateTime" json:"event_registration_updated_at"`
}

func (EventRegistrationModel) TableName() string {
	return "event_registrations"
}
