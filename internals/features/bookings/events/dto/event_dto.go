package dto

import (
	"time"

	"github.com/google/uuid"

	"tripku_backend/internals/features/bookings/events/model"
)

// ================== REQUEST ==================

type CreateEventRequest struct {
	EventAdventureID *uuid.UUID `json:"event_adventure_id"`
	EventTitle       string     `json:"event_title" validate:"required,max=255"`
	EventDescription string     `json:"event_description" validate:"omitempty,max=10000"`
	EventLocation    string     `json:"event_location" validate:"omitempty,max=255"`
	EventPrice       int64      `json:"event_price" validate:"omitempty,gte=0"`
	EventSpotTotal   int        `json:"event_spot_total" validate:"required,gt=0,lte=100000"`
	EventDate        time.Time  `json:"event_date" validate:"required"`
	EventJoinTill    *time.Time `json:"event_join_till"` // defaults to event_date when omitted
}

type UpdateEventRequest struct {
	EventTitle       *string    `json:"event_title" validate:"omitempty,max=255"`
	EventDescription *string    `json:"event_description" validate:"omitempty,max=10000"`
	EventLocation    *string    `json:"event_location" validate:"omitempty,max=255"`
	EventDate        *time.Time `json:"event_date"`
	EventJoinTill    *time.Time `json:"event_join_till"`
}

// ================== RESPONSE ==================

type EventResponse struct {
	EventID          uuid.UUID  `json:"event_id"`
	EventAdventureID *uuid.UUID `json:"event_adventure_id,omitempty"`
	EventTitle       string     `json:"event_title"`
	EventSlug        string     `json:"event_slug"`
	EventDescription string     `json:"event_description"`
	EventLocation    string     `json:"event_location"`
	EventPrice       int64      `json:"event_price"`
	EventSpotTotal   int        `json:"event_spot_total"`
	EventSpotLeft    int        `json:"event_spot_left"`
	EventDate        time.Time  `json:"event_date"`
	EventJoinTill    time.Time  `json:"event_join_till"`
	EventIsExpired   bool       `json:"event_is_expired"`
	EventIsFull      bool       `json:"event_is_full"`
	EventCreatedAt   string     `json:"event_created_at"`
}

type RegistrationResponse struct {
	EventRegistrationID      uuid.UUID `json:"event_registration_id"`
	EventRegistrationEventID uuid.UUID `json:"event_registration_event_id"`
	EventRegistrationUserID  uuid.UUID `json:"event_registration_user_id"`
	EventRegistrationStatus  string    `json:"event_registration_status"`
	EventRegistrationCreated string    `json:"event_registration_created_at"`
	EventRegistrationUpdated string    `json:"event_registration_updated_at"`
}

// ================ CONVERSION =================

func ToEventResponse(m *model.EventModel) *EventResponse {
	now := time.Now()
	return &EventResponse{
		EventID:          m.EventID,
		EventAdventureID: m.EventAdventureID,
		EventTitle:       m.EventTitle,
		EventSlug:        m.EventSlug,
		EventDescription: m.EventDescription,
		EventLocation:    m.EventLocation,
		EventPrice:       m.EventPrice,
		EventSpotTotal:   m.EventSpotTotal,
		EventSpotLeft:    m.EventSpotLeft,
		EventDate:        m.EventDate,
		EventJoinTill:    m.EventJoinTill,
		EventIsExpired:   m.IsExpired(now),
		EventIsFull:      m.IsFull(),
		EventCreatedAt:   m.EventCreatedAt.Format(time.RFC3339),
	}
}

func ToEventResponseList(models []model.EventModel) []EventResponse {
	var result []EventResponse
	for i := range models {
		result = append(result, *ToEventResponse(&models[i]))
	}
	return result
}

func ToRegistrationResponse(m *model.EventRegistrationModel) *RegistrationResponse {
	return &RegistrationResponse{
		EventRegistrationID:      m.EventRegistrationID,
		EventRegistrationEventID: m.EventRegistrationEventID,
		EventRegistrationUserID:  m.EventRegistrationUserID,
		EventRegistrationStatus:  m.EventRegistrationStatus,
		EventRegistrationCreated: m.EventRegistrationCreatedAt.Format(time.RFC3339),
		EventRegistrationUpdated: m.EventRegistrationUpdatedAt.Format(time.RFC3339),
	}
}

func ToRegistrationResponseList(models []model.EventRegistrationModel) []RegistrationResponse {
	var result []RegistrationResponse
	for i := range models {
		result = append(result, *ToRegistrationResponse(&models[i]))
	}
	return result
}
