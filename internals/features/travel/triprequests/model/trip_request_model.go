package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TripRequestStatusPending  = "pending"
	TripRequestStatusReviewed = "reviewed"
	TripRequestStatusClosed   = "closed"
)

type TripRequestModel struct {
	TripRequestID          uuid.UUID      `gorm:"column:trip_request_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"trip_request_id"`
	TripRequestUserID      uuid.UUID      `gorm:"column:trip_request_user_id;type:uuid;not null;index" json:"trip_request_user_id"`
	TripRequestDestination string         `gorm:"column:trip_request_destination;type:varchar(255);not null" json:"trip_request_destination"`
	TripRequestStartDate   *time.Time     `gorm:"column:trip_request_start_date" json:"trip_request_start_date,omitempty"`
	TripRequestEndDate     *time.Time     `gorm:"column:trip_request_end_date" json:"trip_request_end_date,omitempty"`
	TripRequestGroupSize   int            `gorm:"column:trip_request_group_size;not null;default:1" json:"trip_request_group_size"`
	TripRequestBudget      int64          `gorm:"column:trip_request_budget;not null;default:0" json:"trip_request_budget"`
	TripRequestNotes       string         `gorm:"column:trip_request_notes;type:text" json:"trip_request_notes"`
	TripRequestStatus      string         `gorm:"column:trip_request_status;type:varchar(20);not null;default:'pending';index" json:"trip_request_status"`
	TripRequestAdminNotes  string         `gorm:"column:trip_request_admin_notes;type:text" json:"trip_request_admin_notes,omitempty"`
	TripRequestCreatedAt   time.Time      `gorm:"column:trip_request_created_at;autoCreateTime" json:"trip_request_created_at"`
	TripRequestUpdatedAt   time.Time      `gorm:"column:trip_request_updated_at;autoUpdateTime" json:"trip_request_updated_at"`
	TripRequestDeletedAt   gorm.DeletedAt `gorm:"column:trip_request_deleted_at;index" json:"-"`
}

func (TripRequestModel) TableName() string {
	return "trip_requests"
}
