package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	adventureModel "tripku_backend/internals/features/travel/adventures/model"
	"tripku_backend/internals/features/travel/reviews/dto"
	"tripku_backend/internals/features/travel/reviews/model"
	helper "tripku_backend/internals/helpers"
	"tripku_backend/internals/helpers/pgerr"
)

type ReviewController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewReviewController(db *gorm.DB, v *validator.Validate) *ReviewController {
	return &ReviewController{DB: db, Validate: v}
}

// PUT /api/u/adventures/:id/review
//
// One review per user per adventure. Submitting again replaces the
// previous rating and comment.
func (ctl *ReviewController) Upsert(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	adventureID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid adventure id")
	}

	var req dto.UpsertReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var exists int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&adventureModel.AdventureModel{}).
		Where("adventure_id = ? AND adventure_is_published = ?", adventureID, true).
		Count(&exists).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to check adventure")
	}
	if exists == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "adventure not found")
	}

	review := &model.ReviewModel{
		ReviewID:          uuid.New(),
		ReviewAdventureID: adventureID,
		ReviewUserID:      userID,
		ReviewRating:      req.ReviewRating,
		ReviewComment:     req.ReviewComment,
	}

	err = ctl.DB.WithContext(c.UserContext()).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "review_user_id"}, {Name: "review_adventure_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"review_rating":     review.ReviewRating,
				"review_comment":    review.ReviewComment,
				"review_deleted_at": nil,
				"review_updated_at": gorm.Expr("NOW()"),
			}),
		}).
		Create(review).Error
	if err != nil {
		return pgerr.Write(c, err)
	}

	// The upsert may have kept the original row and its original primary
	// key. Reload by the natural key into a fresh struct so the pk on the
	// insert attempt never leaks into the query conditions.
	var stored model.ReviewModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("review_user_id = ? AND review_adventure_id = ?", userID, adventureID).
		First(&stored).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load review")
	}

	return helper.JsonUpdated(c, "Review saved", dto.ToReviewResponse(&stored))
}

// GET /api/public/adventures/:id/reviews
func (ctl *ReviewController) ListByAdventure(c *fiber.Ctx) error {
	adventureID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid adventure id")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).
		Model(&model.ReviewModel{}).
		Where("review_adventure_id = ?", adventureID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count reviews")
	}

	var summary dto.ReviewSummary
	summary.ReviewCount = total
	if total > 0 {
		if err := ctl.DB.WithContext(c.UserContext()).
			Model(&model.ReviewModel{}).
			Where("review_adventure_id = ?", adventureID).
			Select("COALESCE(AVG(review_rating), 0)").
			Scan(&summary.AverageRating).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to compute rating")
		}
	}

	var reviews []model.ReviewModel
	if err := tx.Order("review_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&reviews).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list reviews")
	}

	return helper.JsonOK(c, "", fiber.Map{
		"summary":    summary,
		"reviews":    dto.ToReviewResponseList(reviews),
		"pagination": helper.BuildPagination(total, paging),
	})
}

// DELETE /api/u/adventures/:id/review — delete my review
func (ctl *ReviewController) DeleteMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	adventureID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid adventure id")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Where("review_user_id = ? AND review_adventure_id = ?", userID, adventureID).
		Delete(&model.ReviewModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete review")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "review not found")
	}

	return helper.JsonDeleted(c, "Review deleted", fiber.Map{"review_adventure_id": adventureID})
}
