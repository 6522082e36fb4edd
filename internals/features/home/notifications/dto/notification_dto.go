package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"tripku_backend/internals/features/home/notifications/model"
)

// ================== REQUEST ==================

type BroadcastRequest struct {
	NotificationTitle       string   `json:"notification_title" validate:"required,max=255"`
	NotificationDescription string   `json:"notification_description" validate:"omitempty,max=5000"`
	NotificationTags        []string `json:"notification_tags" validate:"omitempty,dive,max=50"`
}

// ================== RESPONSE ==================

type NotificationResponse struct {
	NotificationID          uuid.UUID      `json:"notification_id"`
	NotificationUserID      *uuid.UUID     `json:"notification_user_id"`
	NotificationKind        string         `json:"notification_kind"`
	NotificationTitle       string         `json:"notification_title"`
	NotificationDescription string         `json:"notification_description"`
	NotificationTags        []string       `json:"notification_tags"`
	NotificationPayload     datatypes.JSON `json:"notification_payload,omitempty"`
	NotificationReadAt      *time.Time     `json:"notification_read_at"`
	NotificationCreatedAt   string         `json:"notification_created_at"`
}

// ================ CONVERSION =================

func ToNotificationResponse(m *model.NotificationModel) *NotificationResponse {
	return &NotificationResponse{
		NotificationID:          m.NotificationID,
		NotificationUserID:      m.NotificationUserID,
		NotificationKind:        m.NotificationKind,
		NotificationTitle:       m.NotificationTitle,
		NotificationDescription: m.NotificationDescription,
		NotificationTags:        m.NotificationTags,
		NotificationPayload:     m.NotificationPayload,
		NotificationReadAt:      m.NotificationReadAt,
		NotificationCreatedAt:   m.NotificationCreatedAt.Format(time.RFC3339),
	}
}

func ToNotificationResponseList(models []model.NotificationModel) []NotificationResponse {
	var result []NotificationResponse
	for i := range models {
		result = append(result, *ToNotificationResponse(&models[i]))
	}
	return result
}
