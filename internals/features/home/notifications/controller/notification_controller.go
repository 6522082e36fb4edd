package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tripku_backend/internals/features/home/notifications/dto"
	"tripku_backend/internals/features/home/notifications/model"
	helper "tripku_backend/internals/helpers"
)

type NotificationController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewNotificationController(db *gorm.DB, v *validator.Validate) *NotificationController {
	return &NotificationController{DB: db, Validate: v}
}

// GET /api/u/notifications — mine + broadcasts
func (ctl *NotificationController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).
		Model(&model.NotificationModel{}).
		Where("notification_user_id = ? OR (notification_user_id IS NULL AND notification_kind = ?)",
			userID, model.KindAdminBroadcast)

	if unread, ok := helper.ParseBoolLoose(c.Query("unread")); ok && unread {
		tx = tx.Where("notification_read_at IS NULL")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count notifications")
	}

	var rows []model.NotificationModel
	if err := tx.Order("notification_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list notifications")
	}

	return helper.JsonList(c, "", dto.ToNotificationResponseList(rows), helper.BuildPagination(total, paging))
}

// PATCH /api/u/notifications/:id/read
func (ctl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid notification id")
	}

	now := time.Now()
	res := ctl.DB.WithContext(c.UserContext()).
		Model(&model.NotificationModel{}).
		Where("notification_id = ? AND notification_user_id = ? AND notification_read_at IS NULL", id, userID).
		Update("notification_read_at", now)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to mark notification")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Notification not found or already read")
	}

	return helper.JsonUpdated(c, "Notification marked as read", fiber.Map{
		"notification_id": id,
		"read_at":         now,
	})
}

// POST /api/a/notifications/broadcast
func (ctl *NotificationController) Broadcast(c *fiber.Ctx) error {
	var req dto.BroadcastRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	n := model.NotificationModel{
		NotificationKind:        model.KindAdminBroadcast,
		NotificationTitle:       req.NotificationTitle,
		NotificationDescription: req.NotificationDescription,
		NotificationTags:        req.NotificationTags,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&n).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create broadcast")
	}

	return helper.JsonCreated(c, "Broadcast created", dto.ToNotificationResponse(&n))
}
