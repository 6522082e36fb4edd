package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
	PaymentStatusExpired = "expired"
)

type PaymentModel struct {
	PaymentID             uuid.UUID      `gorm:"column:payment_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"payment_id"`
	PaymentOrderID        string         `gorm:"column:payment_order_id;type:varchar(64);uniqueIndex:uq_payments_order_id;not null" json:"payment_order_id"`
	PaymentUserID         uuid.UUID      `gorm:"column:payment_user_id;type:uuid;not null;index" json:"payment_user_id"`
	PaymentEventID        uuid.UUID      `gorm:"column:payment_event_id;type:uuid;not null;index" json:"payment_event_id"`
	PaymentAmount         int64          `gorm:"column:payment_amount;not null" json:"payment_amount"`
	PaymentStatus         string         `gorm:"column:payment_status;type:varchar(20);not null;default:'pending';index" json:"payment_status"`
	PaymentSnapToken      string         `gorm:"column:payment_snap_token;type:varchar(255)" json:"payment_snap_token,omitempty"`
	PaymentGatewayStatus  string         `gorm:"column:payment_gateway_status;type:varchar(50)" json:"payment_gateway_status,omitempty"`
	PaymentSettledAt      *time.Time     `gorm:"column:payment_settled_at" json:"payment_settled_at,omitempty"`
	PaymentCreatedAt      time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt      time.Time      `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
	PaymentDeletedAt      gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"-"`
}

func (PaymentModel) TableName() string {
	return "payments"
}
