package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Notification kinds dispatched by the platform.
const (
	KindEventRegistration   = "event_registration"
	KindEventCancellation   = "event_cancellation"
	KindCallScheduled       = "call_scheduled"
	KindCallRescheduled     = "call_rescheduled"
	KindCallCancelled       = "call_cancelled"
	KindPaymentStatus       = "payment_status"
	KindAdminBroadcast      = "admin_broadcast"
	KindTripRequestReceived = "trip_request_received"
)

type NotificationModel struct {
	NotificationID          uuid.UUID      `gorm:"column:notification_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"notification_id"`
	NotificationUserID      *uuid.UUID     `gorm:"column:notification_user_id;type:uuid;index" json:"notification_user_id"` // nil = broadcast / ops inbox
	NotificationKind        string         `gorm:"column:notification_kind;type:varchar(50);not null" json:"notification_kind"`
	NotificationTitle       string         `gorm:"column:notification_title;type:varchar(255);not null" json:"notification_title"`
	NotificationDescription string         `gorm:"column:notification_description;type:text" json:"notification_description"`
	NotificationTags        pq.StringArray `gorm:"column:notification_tags;type:text[]" json:"notification_tags"`
	NotificationPayload     datatypes.JSON `gorm:"column:notification_payload;type:jsonb" json:"notification_payload"`
	NotificationReadAt      *time.Time     `gorm:"column:notification_read_at" json:"notification_read_at"`
	NotificationCreatedAt   time.Time      `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
	NotificationUpdatedAt   time.Time      `gorm:"column:notification_updated_at;autoUpdateTime" json:"notification_updated_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
