package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"tripku_backend/internals/features/travel/adventures/model"
)

// ================== REQUEST ==================

type CreateAdventureRequest struct {
	AdventureTitle        string         `json:"adventure_title" validate:"required,max=255"`
	AdventureDescription  string         `json:"adventure_description" validate:"omitempty,max=20000"`
	AdventureLocation     string         `json:"adventure_location" validate:"omitempty,max=255"`
	AdventureDifficulty   string         `json:"adventure_difficulty" validate:"omitempty,oneof=easy moderate hard extreme"`
	AdventureDurationDays int            `json:"adventure_duration_days" validate:"omitempty,gt=0,lte=365"`
	AdventurePrice        int64          `json:"adventure_price" validate:"omitempty,gte=0"`
	AdventureImages       []string       `json:"adventure_images" validate:"omitempty,dive,url"`
	AdventureTags         []string       `json:"adventure_tags" validate:"omitempty,dive,max=50"`
	AdventureItinerary    datatypes.JSON `json:"adventure_itinerary"`
	AdventureIsPublished  bool           `json:"adventure_is_published"`
}

type UpdateAdventureRequest struct {
	AdventureTitle        *string         `json:"adventure_title" validate:"omitempty,max=255"`
	AdventureDescription  *string         `json:"adventure_description" validate:"omitempty,max=20000"`
	AdventureLocation     *string         `json:"adventure_location" validate:"omitempty,max=255"`
	AdventureDifficulty   *string         `json:"adventure_difficulty" validate:"omitempty,oneof=easy moderate hard extreme"`
	AdventureDurationDays *int            `json:"adventure_duration_days" validate:"omitempty,gt=0,lte=365"`
	AdventurePrice        *int64          `json:"adventure_price" validate:"omitempty,gte=0"`
	AdventureImages       []string        `json:"adventure_images" validate:"omitempty,dive,url"`
	AdventureTags         []string        `json:"adventure_tags" validate:"omitempty,dive,max=50"`
	AdventureItinerary    *datatypes.JSON `json:"adventure_itinerary"`
	AdventureIsPublished  *bool           `json:"adventure_is_published"`
}

// ================== RESPONSE ==================

type AdventureResponse struct {
	AdventureID           uuid.UUID      `json:"adventure_id"`
	AdventureTitle        string         `json:"adventure_title"`
	AdventureSlug         string         `json:"adventure_slug"`
	AdventureDescription  string         `json:"adventure_description"`
	AdventureLocation     string         `json:"adventure_location"`
	AdventureDifficulty   string         `json:"adventure_difficulty"`
	AdventureDurationDays int            `json:"adventure_duration_days"`
	AdventurePrice        int64          `json:"adventure_price"`
	AdventureImages       []string       `json:"adventure_images"`
	AdventureTags         []string       `json:"adventure_tags"`
	AdventureItinerary    datatypes.JSON `json:"adventure_itinerary,omitempty"`
	AdventureGuideID      uuid.UUID      `json:"adventure_guide_id"`
	AdventureIsPublished  bool           `json:"adventure_is_published"`
	AdventureCreatedAt    string         `json:"adventure_created_at"`
}

// ================ CONVERSION =================

func (r *CreateAdventureRequest) ToModel(guideID uuid.UUID, slug string) *model.AdventureModel {
	difficulty := r.AdventureDifficulty
	if difficulty == "" {
		difficulty = model.DifficultyModerate
	}
	duration := r.AdventureDurationDays
	if duration <= 0 {
		duration = 1
	}
	return &model.AdventureModel{
		AdventureTitle:        r.AdventureTitle,
		AdventureSlug:         slug,
		AdventureDescription:  r.AdventureDescription,
		AdventureLocation:     r.AdventureLocation,
		AdventureDifficulty:   difficulty,
		AdventureDurationDays: duration,
		AdventurePrice:        r.AdventurePrice,
		AdventureImages:       r.AdventureImages,
		AdventureTags:         r.AdventureTags,
		AdventureItinerary:    r.AdventureItinerary,
		AdventureGuideID:      guideID,
		AdventureIsPublished:  r.AdventureIsPublished,
	}
}

func ToAdventureResponse(m *model.AdventureModel) *AdventureResponse {
	return &AdventureResponse{
		AdventureID:           m.AdventureID,
		AdventureTitle:        m.AdventureTitle,
		AdventureSlug:         m.AdventureSlug,
		AdventureDescription:  m.AdventureDescription,
		AdventureLocation:     m.AdventureLocation,
		AdventureDifficulty:   m.AdventureDifficulty,
		AdventureDurationDays: m.AdventureDurationDays,
		AdventurePrice:        m.AdventurePrice,
		AdventureImages:       m.AdventureImages,
		AdventureTags:         m.AdventureTags,
		AdventureItinerary:    m.AdventureItinerary,
		AdventureGuideID:      m.AdventureGuideID,
		AdventureIsPublished:  m.AdventureIsPublished,
		AdventureCreatedAt:    m.AdventureCreatedAt.Format(time.RFC3339),
	}
}

func ToAdventureResponseList(models []model.AdventureModel) []AdventureResponse {
	var result []AdventureResponse
	for i := range models {
		result = append(result, *ToAdventureResponse(&models[i]))
	}
	return result
}
