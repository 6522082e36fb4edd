package controller

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"tripku_backend/internals/features/travel/adventures/dto"
	"tripku_backend/internals/features/travel/adventures/model"
	helper "tripku_backend/internals/helpers"
	"tripku_backend/internals/helpers/pgerr"
)

type AdventureController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAdventureController(db *gorm.DB, v *validator.Validate) *AdventureController {
	return &AdventureController{DB: db, Validate: v}
}

// POST /api/a/adventures
func (ctl *AdventureController) Create(c *fiber.Ctx) error {
	guideID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateAdventureRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	slug, err := helper.EnsureUniqueSlug(ctl.DB, "adventures", "adventure_slug", helper.GenerateSlug(req.AdventureTitle))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to generate slug")
	}

	adventure := req.ToModel(guideID, slug)
	if err := ctl.DB.WithContext(c.UserContext()).Create(adventure).Error; err != nil {
		return pgerr.Write(c, err)
	}

	return helper.JsonCreated(c, "Adventure created", dto.ToAdventureResponse(adventure))
}

// GET /api/public/adventures — published only
func (ctl *AdventureController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).
		Model(&model.AdventureModel{}).
		Where("adventure_is_published = ?", true)

	if q := c.Query("q"); q != "" {
		tx = tx.Where("adventure_title ILIKE ? OR adventure_location ILIKE ?", "%"+q+"%", "%"+q+"%")
	}
	if difficulty := c.Query("difficulty"); difficulty != "" {
		tx = tx.Where("adventure_difficulty = ?", difficulty)
	}
	if tag := c.Query("tag"); tag != "" {
		tx = tx.Where("? = ANY(adventure_tags)", tag)
	}
	if minStr := c.Query("price_min"); minStr != "" {
		if v, err := strconv.ParseInt(minStr, 10, 64); err == nil {
			tx = tx.Where("adventure_price >= ?", v)
		}
	}
	if maxStr := c.Query("price_max"); maxStr != "" {
		if v, err := strconv.ParseInt(maxStr, 10, 64); err == nil {
			tx = tx.Where("adventure_price <= ?", v)
		}
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count adventures")
	}

	var adventures []model.AdventureModel
	if err := tx.Order("adventure_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&adventures).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list adventures")
	}

	return helper.JsonList(c, "", dto.ToAdventureResponseList(adventures), helper.BuildPagination(total, paging))
}

// GET /api/public/adventures/:slug
func (ctl *AdventureController) GetBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var adventure model.AdventureModel
	err := ctl.DB.WithContext(c.UserContext()).
		Where("adventure_slug = ? AND adventure_is_published = ?", slug, true).
		First(&adventure).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "adventure not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load adventure")
	}

	return helper.JsonOK(c, "", dto.ToAdventureResponse(&adventure))
}

// PATCH /api/a/adventures/:id
func (ctl *AdventureController) Update(c *fiber.Ctx) error {
	adventureID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid adventure id")
	}

	var req dto.UpdateAdventureRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var adventure model.AdventureModel
	err = ctl.DB.WithContext(c.UserContext()).
		Where("adventure_id = ?", adventureID).
		First(&adventure).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "adventure not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load adventure")
	}

	updates := map[string]interface{}{}
	if req.AdventureTitle != nil {
		updates["adventure_title"] = *req.AdventureTitle
	}
	if req.AdventureDescription != nil {
		updates["adventure_description"] = *req.AdventureDescription
	}
	if req.AdventureLocation != nil {
		updates["adventure_location"] = *req.AdventureLocation
	}
	if req.AdventureDifficulty != nil {
		updates["adventure_difficulty"] = *req.AdventureDifficulty
	}
	if req.AdventureDurationDays != nil {
		updates["adventure_duration_days"] = *req.AdventureDurationDays
	}
	if req.AdventurePrice != nil {
		updates["adventure_price"] = *req.AdventurePrice
	}
	if req.AdventureImages != nil {
		updates["adventure_images"] = pq.StringArray(req.AdventureImages)
	}
	if req.AdventureTags != nil {
		updates["adventure_tags"] = pq.StringArray(req.AdventureTags)
	}
	if req.AdventureItinerary != nil {
		updates["adventure_itinerary"] = *req.AdventureItinerary
	}
	if req.AdventureIsPublished != nil {
		updates["adventure_is_published"] = *req.AdventureIsPublished
	}

	if len(updates) > 0 {
		if err := ctl.DB.WithContext(c.UserContext()).
			Model(&adventure).
			Updates(updates).Error; err != nil {
			return pgerr.Write(c, err)
		}
	}

	return helper.JsonUpdated(c, "Adventure updated", dto.ToAdventureResponse(&adventure))
}

// DELETE /api/a/adventures/:id — soft delete
func (ctl *AdventureController) Delete(c *fiber.Ctx) error {
	adventureID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid adventure id")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Where("adventure_id = ?", adventureID).
		Delete(&model.AdventureModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete adventure")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "adventure not found")
	}

	return helper.JsonDeleted(c, "Adventure deleted", fiber.Map{"adventure_id": adventureID})
}
