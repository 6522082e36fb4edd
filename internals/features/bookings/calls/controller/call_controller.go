package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tripku_backend/internals/features/bookings/calls/dto"
	"tripku_backend/internals/features/bookings/calls/model"
	"tripku_backend/internals/features/bookings/calls/service"
	helper "tripku_backend/internals/helpers"
	"tripku_backend/internals/helpers/pgerr"
)

type CallController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Service  *service.CallService
}

func NewCallController(db *gorm.DB, v *validator.Validate, svc *service.CallService) *CallController {
	return &CallController{DB: db, Validate: v, Service: svc}
}

func writeCallError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrCallNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrCallStartNotFuture),
		errors.Is(err, service.ErrCallEndBeforeStart):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrCallTimeConflict),
		errors.Is(err, service.ErrCallNotReschedulable),
		errors.Is(err, service.ErrCallNotCompletable),
		errors.Is(err, service.ErrCallAlreadyCompleted):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	default:
		// Database-level constraint violations (exclusion, unique) still
		// answer 409/400 instead of a blanket 500.
		if status, msg := pgerr.Map(err); status != fiber.StatusInternalServerError {
			return helper.JsonError(c, status, msg)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "call operation failed")
	}
}

// POST /api/u/calls
func (ctl *CallController) Schedule(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.ScheduleCallRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	call, err := ctl.Service.Schedule(c.UserContext(), userID, service.ScheduleInput{
		StartTime:   req.CallStartTime,
		EndTime:     req.CallEndTime,
		MeetingLink: req.CallMeetingLink,
		Topic:       req.CallTopic,
		Notes:       req.CallNotes,
	})
	if err != nil {
		return writeCallError(c, err)
	}

	return helper.JsonCreated(c, "Call scheduled", dto.ToCallResponse(call))
}

// PATCH /api/u/calls/:id/reschedule
func (ctl *CallController) Reschedule(c *fiber.Ctx) error {
	callID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid call id")
	}

	var req dto.RescheduleCallRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	call, err := ctl.Service.Reschedule(c.UserContext(), callID, req.CallStartTime, req.CallEndTime)
	if err != nil {
		return writeCallError(c, err)
	}

	return helper.JsonUpdated(c, "Call rescheduled", dto.ToCallResponse(call))
}

// PATCH /api/u/calls/:id/cancel
func (ctl *CallController) Cancel(c *fiber.Ctx) error {
	callID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid call id")
	}

	var req dto.CancelCallRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	call, err := ctl.Service.Cancel(c.UserContext(), callID, req.CallCancelReason)
	if err != nil {
		return writeCallError(c, err)
	}

	return helper.JsonUpdated(c, "Call cancelled", dto.ToCallResponse(call))
}

// PATCH /api/a/calls/:id/complete
func (ctl *CallController) MarkCompleted(c *fiber.Ctx) error {
	callID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid call id")
	}

	call, err := ctl.Service.MarkCompleted(c.UserContext(), callID)
	if err != nil {
		return writeCallError(c, err)
	}

	return helper.JsonUpdated(c, "Call completed", dto.ToCallResponse(call))
}

// POST /api/a/calls/expire
func (ctl *CallController) ExpirePast(c *fiber.Ctx) error {
	count, err := ctl.Service.ExpirePastCalls(c.UserContext())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "expire sweep failed")
	}
	return helper.JsonOK(c, "Expire sweep finished", fiber.Map{"expired": count})
}

// GET /api/u/calls — my calls
func (ctl *CallController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).
		Model(&model.TripPlanningCallModel{}).
		Where("call_adventurer_id = ?", userID)
	if status := c.Query("status"); status != "" {
		tx = tx.Where("call_status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count calls")
	}

	var calls []model.TripPlanningCallModel
	if err := tx.Order("call_start_time DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&calls).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list calls")
	}

	return helper.JsonList(c, "", dto.ToCallResponseList(calls), helper.BuildPagination(total, paging))
}

// GET /api/a/calls — all calls for the ops team
func (ctl *CallController) ListAll(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)

	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.TripPlanningCallModel{})
	if status := c.Query("status"); status != "" {
		tx = tx.Where("call_status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count calls")
	}

	var calls []model.TripPlanningCallModel
	if err := tx.Order("call_start_time ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&calls).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list calls")
	}

	return helper.JsonList(c, "", dto.ToCallResponseList(calls), helper.BuildPagination(total, paging))
}
