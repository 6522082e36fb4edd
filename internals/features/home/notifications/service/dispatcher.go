package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tripku_backend/internals/features/home/notifications/model"
)

// Dispatcher persists notification rows for users (or the ops inbox when the
// recipient is nil). Dispatch failures are logged and never propagated: a
// lost notification must not fail or roll back the business operation that
// produced it.
type Dispatcher struct {
	DB *gorm.DB
}

func NewDispatcher(db *gorm.DB) *Dispatcher {
	return &Dispatcher{DB: db}
}

// Send writes one notification row. A nil dispatcher is a no-op.
func (d *Dispatcher) Send(ctx context.Context, recipient *uuid.UUID, kind, title, description string, payload any) error {
	if d == nil || d.DB == nil {
		return nil
	}
	n := model.NotificationModel{
		NotificationUserID:      recipient,
		NotificationKind:        kind,
		NotificationTitle:       title,
		NotificationDescription: description,
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		n.NotificationPayload = raw
	}
	return d.DB.WithContext(ctx).Create(&n).Error
}

// SendAsync dispatches on a background goroutine, detached from the request
// lifecycle. Errors (and panics) are logged and dropped.
func (d *Dispatcher) SendAsync(recipient *uuid.UUID, kind, title, description string, payload any) {
	if d == nil || d.DB == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Notify] panic dispatching %s: %v", kind, r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.Send(ctx, recipient, kind, title, description, payload); err != nil {
			log.Printf("[Notify] dispatch %s failed: %v", kind, err)
		}
	}()
}
