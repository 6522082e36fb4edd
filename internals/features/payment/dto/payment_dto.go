package dto

import (
	"time"

	"github.com/google/uuid"

	"tripku_backend/internals/features/payment/model"
)

// ================== RESPONSE ==================

type PaymentResponse struct {
	PaymentID            uuid.UUID `json:"payment_id"`
	PaymentOrderID       string    `json:"payment_order_id"`
	PaymentUserID        uuid.UUID `json:"payment_user_id"`
	PaymentEventID       uuid.UUID `json:"payment_event_id"`
	PaymentAmount        int64     `json:"payment_amount"`
	PaymentStatus        string    `json:"payment_status"`
	PaymentSnapToken     string    `json:"payment_snap_token,omitempty"`
	PaymentGatewayStatus string    `json:"payment_gateway_status,omitempty"`
	PaymentSettledAt     *string   `json:"payment_settled_at,omitempty"`
	PaymentCreatedAt     string    `json:"payment_created_at"`
}

// ================ CONVERSION =================

func ToPaymentResponse(m *model.PaymentModel) *PaymentResponse {
	resp := &PaymentResponse{
		PaymentID:            m.PaymentID,
		PaymentOrderID:       m.PaymentOrderID,
		PaymentUserID:        m.PaymentUserID,
		PaymentEventID:       m.PaymentEventID,
		PaymentAmount:        m.PaymentAmount,
		PaymentStatus:        m.PaymentStatus,
		PaymentSnapToken:     m.PaymentSnapToken,
		PaymentGatewayStatus: m.PaymentGatewayStatus,
		PaymentCreatedAt:     m.PaymentCreatedAt.Format(time.RFC3339),
	}
	if m.PaymentSettledAt != nil {
		formatted := m.PaymentSettledAt.Format(time.RFC3339)
		resp.PaymentSettledAt = &formatted
	}
	return resp
}

func ToPaymentResponseList(models []model.PaymentModel) []PaymentResponse {
	var result []PaymentResponse
	for i := range models {
		result = append(result, *ToPaymentResponse(&models[i]))
	}
	return result
}
