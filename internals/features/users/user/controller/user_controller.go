package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tripku_backend/internals/features/users/user/dto"
	"tripku_backend/internals/features/users/user/model"
	helper "tripku_backend/internals/helpers"
)

type UserController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewUserController(db *gorm.DB, v *validator.Validate) *UserController {
	return &UserController{DB: db, Validate: v}
}

// GET /api/u/me
func (ctl *UserController) GetMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var user model.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("user_id = ?", userID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load user")
	}

	return helper.JsonOK(c, "", dto.ToUserResponse(&user))
}

// PUT /api/u/me
func (ctl *UserController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updates := map[string]any{}
	if req.UserName != nil {
		updates["user_name"] = strings.TrimSpace(*req.UserName)
	}
	if req.UserBio != nil {
		updates["user_bio"] = *req.UserBio
	}
	if req.UserAvatarURL != nil {
		updates["user_avatar_url"] = *req.UserAvatarURL
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "nothing to update")
	}

	var user model.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("user_id = ?", userID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load user")
	}

	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&user).
		Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update profile")
	}

	return helper.JsonUpdated(c, "Profile updated", dto.ToUserResponse(&user))
}

// GET /api/a/users
func (ctl *UserController) ListUsers(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.UserModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		kw := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(user_name) LIKE ? OR LOWER(user_email) LIKE ?", kw, kw)
	}
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		tx = tx.Where("user_role = ?", role)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count users")
	}

	var users []model.UserModel
	if err := tx.Order("user_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list users")
	}

	return helper.JsonList(c, "", dto.ToUserResponseList(users), helper.BuildPagination(total, paging))
}

// PATCH /api/a/users/:id/active
func (ctl *UserController) SetActive(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var body struct {
		IsActive *bool `json:"is_active" validate:"required"`
	}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := ctl.Validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Model(&model.UserModel{}).
		Where("user_id = ?", id).
		Update("user_is_active", *body.IsActive)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update user")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	return helper.JsonUpdated(c, "User status updated", fiber.Map{
		"user_id":   id,
		"is_active": *body.IsActive,
	})
}
