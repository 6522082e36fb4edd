package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"tripku_backend/internals/constants"
	"tripku_backend/internals/features/travel/posts/dto"
	"tripku_backend/internals/features/travel/posts/model"
	helper "tripku_backend/internals/helpers"
	"tripku_backend/internals/helpers/pgerr"
)

type PostController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewPostController(db *gorm.DB, v *validator.Validate) *PostController {
	return &PostController{DB: db, Validate: v}
}

// POST /api/a/posts
func (ctl *PostController) Create(c *fiber.Ctx) error {
	authorID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	slug, err := helper.EnsureUniqueSlug(ctl.DB, "posts", "post_slug", helper.GenerateSlug(req.PostTitle))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to generate slug")
	}

	post := &model.PostModel{
		PostTitle:       req.PostTitle,
		PostSlug:        slug,
		PostBody:        req.PostBody,
		PostCoverURL:    req.PostCoverURL,
		PostTags:        req.PostTags,
		PostAuthorID:    authorID,
		PostIsPublished: req.PostIsPublished,
	}
	if req.PostIsPublished {
		now := time.Now()
		post.PostPublishedAt = &now
	}

	if err := ctl.DB.WithContext(c.UserContext()).Create(post).Error; err != nil {
		return pgerr.Write(c, err)
	}

	return helper.JsonCreated(c, "Post created", dto.ToPostResponse(post))
}

// GET /api/public/posts — published only
func (ctl *PostController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).
		Model(&model.PostModel{}).
		Where("post_is_published = ?", true)

	if q := c.Query("q"); q != "" {
		tx = tx.Where("post_title ILIKE ?", "%"+q+"%")
	}
	if tag := c.Query("tag"); tag != "" {
		tx = tx.Where("? = ANY(post_tags)", tag)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count posts")
	}

	var posts []model.PostModel
	if err := tx.Order("post_published_at DESC NULLS LAST").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&posts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list posts")
	}

	return helper.JsonList(c, "", dto.ToPostResponseList(posts), helper.BuildPagination(total, paging))
}

// GET /api/public/posts/:slug
func (ctl *PostController) GetBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var post model.PostModel
	err := ctl.DB.WithContext(c.UserContext()).
		Where("post_slug = ? AND post_is_published = ?", slug, true).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "post not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load post")
	}

	return helper.JsonOK(c, "", dto.ToPostResponse(&post))
}

// canModify: the author owns the post; owners moderate everything.
func canModify(c *fiber.Ctx, post *model.PostModel) bool {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return false
	}
	return post.PostAuthorID == userID || helper.GetUserRole(c) == constants.RoleOwner
}

// PATCH /api/a/posts/:id
func (ctl *PostController) Update(c *fiber.Ctx) error {
	postID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid post id")
	}

	var req dto.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var post model.PostModel
	err = ctl.DB.WithContext(c.UserContext()).
		Where("post_id = ?", postID).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "post not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load post")
	}
	if !canModify(c, &post) {
		return helper.JsonError(c, fiber.StatusForbidden, "only the author may modify this post")
	}

	updates := map[string]interface{}{}
	if req.PostTitle != nil {
		updates["post_title"] = *req.PostTitle
	}
	if req.PostBody != nil {
		updates["post_body"] = *req.PostBody
	}
	if req.PostCoverURL != nil {
		updates["post_cover_url"] = *req.PostCoverURL
	}
	if req.PostTags != nil {
		updates["post_tags"] = pq.StringArray(req.PostTags)
	}
	if req.PostIsPublished != nil {
		updates["post_is_published"] = *req.PostIsPublished
		// first transition to published stamps the publish time
		if *req.PostIsPublished && post.PostPublishedAt == nil {
			updates["post_published_at"] = time.Now()
		}
	}

	if len(updates) > 0 {
		if err := ctl.DB.WithContext(c.UserContext()).
			Model(&post).
			Updates(updates).Error; err != nil {
			return pgerr.Write(c, err)
		}
	}

	return helper.JsonUpdated(c, "Post updated", dto.ToPostResponse(&post))
}

// DELETE /api/a/posts/:id — soft delete, author-scoped
func (ctl *PostController) Delete(c *fiber.Ctx) error {
	postID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid post id")
	}

	var post model.PostModel
	err = ctl.DB.WithContext(c.UserContext()).
		Where("post_id = ?", postID).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "post not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load post")
	}
	if !canModify(c, &post) {
		return helper.JsonError(c, fiber.StatusForbidden, "only the author may delete this post")
	}

	if err := ctl.DB.WithContext(c.UserContext()).Delete(&post).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete post")
	}

	return helper.JsonDeleted(c, "Post deleted", fiber.Map{"post_id": postID})
}
