package dto

import (
	"time"

	"github.com/google/uuid"

	"tripku_backend/internals/features/travel/reviews/model"
)

// ================== REQUEST ==================

type UpsertReviewRequest struct {
	ReviewRating  int    `json:"review_rating" validate:"required,gte=1,lte=5"`
	ReviewComment string `json:"review_comment" validate:"omitempty,max=5000"`
}

// ================== RESPONSE ==================

type ReviewResponse struct {
	ReviewID          uuid.UUID `json:"review_id"`
	ReviewAdventureID uuid.UUID `json:"review_adventure_id"`
	ReviewUserID      uuid.UUID `json:"review_user_id"`
	ReviewRating      int       `json:"review_rating"`
	ReviewComment     string    `json:"review_comment,omitempty"`
	ReviewCreatedAt   string    `json:"review_created_at"`
}

type ReviewSummary struct {
	ReviewCount   int64   `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

// ================ CONVERSION =================

func ToReviewResponse(m *model.ReviewModel) *ReviewResponse {
	return &ReviewResponse{
		ReviewID:          m.ReviewID,
		ReviewAdventureID: m.ReviewAdventureID,
		ReviewUserID:      m.ReviewUserID,
		ReviewRating:      m.ReviewRating,
		ReviewComment:     m.ReviewComment,
		ReviewCreatedAt:   m.ReviewCreatedAt.Format(time.RFC3339),
	}
}

func ToReviewResponseList(models []model.ReviewModel) []ReviewResponse {
	var result []ReviewResponse
	for i := range models {
		result = append(result, *ToReviewResponse(&models[i]))
	}
	return result
}
