package dto

import (
	"time"

	"github.com/google/uuid"

	"tripku_backend/internals/features/travel/triprequests/model"
)

// ================== REQUEST ==================

type CreateTripRequestRequest struct {
	TripRequestDestination string     `json:"trip_request_destination" validate:"required,max=255"`
	TripRequestStartDate   *time.Time `json:"trip_request_start_date"`
	TripRequestEndDate     *time.Time `json:"trip_request_end_date"`
	TripRequestGroupSize   int        `json:"trip_request_group_size" validate:"omitempty,gt=0,lte=100"`
	TripRequestBudget      int64      `json:"trip_request_budget" validate:"omitempty,gte=0"`
	TripRequestNotes       string     `json:"trip_request_notes" validate:"omitempty,max=10000"`
}

type TriageTripRequestRequest struct {
	TripRequestStatus     string `json:"trip_request_status" validate:"required,oneof=pending reviewed closed"`
	TripRequestAdminNotes string `json:"trip_request_admin_notes" validate:"omitempty,max=10000"`
}

// ================== RESPONSE ==================

type TripRequestResponse struct {
	TripRequestID          uuid.UUID  `json:"trip_request_id"`
	TripRequestUserID      uuid.UUID  `json:"trip_request_user_id"`
	TripRequestDestination string     `json:"trip_request_destination"`
	TripRequestStartDate   *time.Time `json:"trip_request_start_date,omitempty"`
	TripRequestEndDate     *time.Time `json:"trip_request_end_date,omitempty"`
	TripRequestGroupSize   int        `json:"trip_request_group_size"`
	TripRequestBudget      int64      `json:"trip_request_budget"`
	TripRequestNotes       string     `json:"trip_request_notes,omitempty"`
	TripRequestStatus      string     `json:"trip_request_status"`
	TripRequestAdminNotes  string     `json:"trip_request_admin_notes,omitempty"`
	TripRequestCreatedAt   string     `json:"trip_request_created_at"`
}

// ================ CONVERSION =================

func (r *CreateTripRequestRequest) ToModel(userID uuid.UUID) *model.TripRequestModel {
	groupSize := r.TripRequestGroupSize
	if groupSize <= 0 {
		groupSize = 1
	}
	return &model.TripRequestModel{
		TripRequestUserID:      userID,
		TripRequestDestination: r.TripRequestDestination,
		TripRequestStartDate:   r.TripRequestStartDate,
		TripRequestEndDate:     r.TripRequestEndDate,
		TripRequestGroupSize:   groupSize,
		TripRequestBudget:      r.TripRequestBudget,
		TripRequestNotes:       r.TripRequestNotes,
		TripRequestStatus:      model.TripRequestStatusPending,
	}
}

func ToTripRequestResponse(m *model.TripRequestModel) *TripRequestResponse {
	return &TripRequestResponse{
		TripRequestID:          m.TripRequestID,
		TripRequestUserID:      m.TripRequestUserID,
		TripRequestDestination: m.TripRequestDestination,
		TripRequestStartDate:   m.TripRequestStartDate,
		TripRequestEndDate:     m.TripRequestEndDate,
		TripRequestGroupSize:   m.TripRequestGroupSize,
		TripRequestBudget:      m.TripRequestBudget,
		TripRequestNotes:       m.TripRequestNotes,
		TripRequestStatus:      m.TripRequestStatus,
		TripRequestAdminNotes:  m.TripRequestAdminNotes,
		TripRequestCreatedAt:   m.TripRequestCreatedAt.Format(time.RFC3339),
	}
}

func ToTripRequestResponseList(models []model.TripRequestModel) []TripRequestResponse {
	var result []TripRequestResponse
	for i := range models {
		result = append(result, *ToTripRequestResponse(&models[i]))
	}
	return result
}
