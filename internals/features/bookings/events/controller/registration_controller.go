package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tripku_backend/internals/features/bookings/events/dto"
	"tripku_backend/internals/features/bookings/events/model"
	"tripku_backend/internals/features/bookings/events/service"
	helper "tripku_backend/internals/helpers"
)

type RegistrationController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Service  *service.RegistrationService
}

func NewRegistrationController(db *gorm.DB, v *validator.Validate, svc *service.RegistrationService) *RegistrationController {
	return &RegistrationController{DB: db, Validate: v, Service: svc}
}

func writeRegistrationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrRegistrationNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEventFull),
		errors.Is(err, service.ErrAlreadyRegistered),
		errors.Is(err, service.ErrRegistrationClosed),
		errors.Is(err, service.ErrAlreadyCancelled),
		errors.Is(err, service.ErrNotConfirmed):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "registration operation failed")
	}
}

// POST /api/u/events/:id/join
func (ctl *RegistrationController) Join(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid event id")
	}

	reg, err := ctl.Service.Join(c.UserContext(), eventID, userID)
	if err != nil {
		return writeRegistrationError(c, err)
	}

	return helper.JsonCreated(c, "Registration confirmed", dto.ToRegistrationResponse(reg))
}

// POST /api/u/events/:id/cancel
func (ctl *RegistrationController) Cancel(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid event id")
	}

	reg, err := ctl.Service.Cancel(c.UserContext(), eventID, userID)
	if err != nil {
		return writeRegistrationError(c, err)
	}

	return helper.JsonOK(c, "Registration cancelled", dto.ToRegistrationResponse(reg))
}

// GET /api/u/registrations — my registrations
func (ctl *RegistrationController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).
		Model(&model.EventRegistrationModel{}).
		Where("event_registration_user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		tx = tx.Where("event_registration_status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count registrations")
	}

	var regs []model.EventRegistrationModel
	if err := tx.Order("event_registration_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&regs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list registrations")
	}

	return helper.JsonList(c, "", dto.ToRegistrationResponseList(regs), helper.BuildPagination(total, paging))
}

// GET /api/a/events/:id/registrations
func (ctl *RegistrationController) ListByEvent(c *fiber.Ctx) error {
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid event id")
	}
	paging := helper.ResolvePaging(c, 50, 200)

	tx := ctl.DB.WithContext(c.UserContext()).
		Model(&model.EventRegistrationModel{}).
		Where("event_registration_event_id = ?", eventID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count registrations")
	}

	var regs []model.EventRegistrationModel
	if err := tx.Order("event_registration_created_at ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&regs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list registrations")
	}

	return helper.JsonList(c, "", dto.ToRegistrationResponseList(regs), helper.BuildPagination(total, paging))
}

// PATCH /api/a/events/:id/registrations/:userId/attended
func (ctl *RegistrationController) MarkAttended(c *fiber.Ctx) error {
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid event id")
	}
	userID, err := helper.ParseUUIDParam(c, "userId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	reg, err := ctl.Service.MarkAttended(c.UserContext(), eventID, userID)
	if err != nil {
		return writeRegistrationError(c, err)
	}

	return helper.JsonUpdated(c, "Registration marked as attended", dto.ToRegistrationResponse(reg))
}
