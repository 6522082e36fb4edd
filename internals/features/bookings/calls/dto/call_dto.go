package dto

import (
	"time"

	"github.com/google/uuid"

	"tripku_backend/internals/features/bookings/calls/model"
)

// ================== REQUEST ==================

type ScheduleCallRequest struct {
	CallStartTime   time.Time  `json:"call_start_time" validate:"required"`
	CallEndTime     *time.Time `json:"call_end_time"` // defaults to start + 30m
	CallMeetingLink string     `json:"call_meeting_link" validate:"omitempty,url,max=512"`
	CallTopic       string     `json:"call_topic" validate:"omitempty,max=255"`
	CallNotes       string     `json:"call_notes" validate:"omitempty,max=5000"`
}

type RescheduleCallRequest struct {
	CallStartTime time.Time  `json:"call_start_time" validate:"required"`
	CallEndTime   *time.Time `json:"call_end_time"`
}

type CancelCallRequest struct {
	CallCancelReason string `json:"call_cancel_reason" validate:"omitempty,max=1000"`
}

// ================== RESPONSE ==================

type CallResponse struct {
	CallID              uuid.UUID `json:"call_id"`
	CallAdventurerID    uuid.UUID `json:"call_adventurer_id"`
	CallTopic           string    `json:"call_topic,omitempty"`
	CallNotes           string    `json:"call_notes,omitempty"`
	CallStartTime       time.Time `json:"call_start_time"`
	CallEndTime         time.Time `json:"call_end_time"`
	CallStatus          string    `json:"call_status"`
	CallMeetingLink     string    `json:"call_meeting_link"`
	CallCalendarEventID *string   `json:"call_calendar_event_id,omitempty"`
	CallCancelReason    *string   `json:"call_cancel_reason,omitempty"`
	CallCreatedAt       string    `json:"call_created_at"`
}

// ================ CONVERSION =================

func ToCallResponse(m *model.TripPlanningCallModel) *CallResponse {
	return &CallResponse{
		CallID:              m.CallID,
		CallAdventurerID:    m.CallAdventurerID,
		CallTopic:           m.CallTopic,
		CallNotes:           m.CallNotes,
		CallStartTime:       m.CallStartTime,
		CallEndTime:         m.CallEndTime,
		CallStatus:          m.CallStatus,
		CallMeetingLink:     m.CallMeetingLink,
		CallCalendarEventID: m.CallCalendarEventID,
		CallCancelReason:    m.CallCancelReason,
		CallCreatedAt:       m.CallCreatedAt.Format(time.RFC3339),
	}
}

func ToCallResponseList(models []model.TripPlanningCallModel) []CallResponse {
	var result []CallResponse
	for i := range models {
		result = append(result, *ToCallResponse(&models[i]))
	}
	return result
}
