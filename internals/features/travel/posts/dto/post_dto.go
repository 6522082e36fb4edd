package dto

import (
	"time"

	"github.com/google/uuid"

	"tripku_backend/internals/features/travel/posts/model"
)

// ================== REQUEST ==================

type CreatePostRequest struct {
	PostTitle       string   `json:"post_title" validate:"required,max=255"`
	PostBody        string   `json:"post_body" validate:"required"`
	PostCoverURL    string   `json:"post_cover_url" validate:"omitempty,url,max=512"`
	PostTags        []string `json:"post_tags" validate:"omitempty,dive,max=50"`
	PostIsPublished bool     `json:"post_is_published"`
}

type UpdatePostRequest struct {
	PostTitle       *string  `json:"post_title" validate:"omitempty,max=255"`
	PostBody        *string  `json:"post_body" validate:"omitempty"`
	PostCoverURL    *string  `json:"post_cover_url" validate:"omitempty,url,max=512"`
	PostTags        []string `json:"post_tags" validate:"omitempty,dive,max=50"`
	PostIsPublished *bool    `json:"post_is_published"`
}

// ================== RESPONSE ==================

type PostResponse struct {
	PostID          uuid.UUID `json:"post_id"`
	PostTitle       string    `json:"post_title"`
	PostSlug        string    `json:"post_slug"`
	PostBody        string    `json:"post_body"`
	PostCoverURL    string    `json:"post_cover_url,omitempty"`
	PostTags        []string  `json:"post_tags"`
	PostAuthorID    uuid.UUID `json:"post_author_id"`
	PostIsPublished bool      `json:"post_is_published"`
	PostPublishedAt *string   `json:"post_published_at,omitempty"`
	PostCreatedAt   string    `json:"post_created_at"`
}

// ================ CONVERSION =================

func ToPostResponse(m *model.PostModel) *PostResponse {
	resp := &PostResponse{
		PostID:          m.PostID,
		PostTitle:       m.PostTitle,
		PostSlug:        m.PostSlug,
		PostBody:        m.PostBody,
		PostCoverURL:    m.PostCoverURL,
		PostTags:        m.PostTags,
		PostAuthorID:    m.PostAuthorID,
		PostIsPublished: m.PostIsPublished,
		PostCreatedAt:   m.PostCreatedAt.Format(time.RFC3339),
	}
	if m.PostPublishedAt != nil {
		formatted := m.PostPublishedAt.Format(time.RFC3339)
		resp.PostPublishedAt = &formatted
	}
	return resp
}

func ToPostResponseList(models []model.PostModel) []PostResponse {
	var result []PostResponse
	for i := range models {
		result = append(result, *ToPostResponse(&models[i]))
	}
	return result
}
