package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifModel "tripku_backend/internals/features/home/notifications/model"
	notifService "tripku_backend/internals/features/home/notifications/service"
	"tripku_backend/internals/features/travel/triprequests/dto"
	"tripku_backend/internals/features/travel/triprequests/model"
	helper "tripku_backend/internals/helpers"
	"tripku_backend/internals/helpers/pgerr"
)

type TripRequestController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Notifier *notifService.Dispatcher
}

func NewTripRequestController(db *gorm.DB, v *validator.Validate, notifier *notifService.Dispatcher) *TripRequestController {
	return &TripRequestController{DB: db, Validate: v, Notifier: notifier}
}

// POST /api/u/trip-requests
func (ctl *TripRequestController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateTripRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.TripRequestStartDate != nil && req.TripRequestEndDate != nil &&
		req.TripRequestEndDate.Before(*req.TripRequestStartDate) {
		return helper.JsonError(c, fiber.StatusBadRequest, "trip_request_end_date must not be before trip_request_start_date")
	}

	tripRequest := req.ToModel(userID)
	if err := ctl.DB.WithContext(c.UserContext()).Create(tripRequest).Error; err != nil {
		return pgerr.Write(c, err)
	}

	if ctl.Notifier != nil {
		ctl.Notifier.SendAsync(nil,
			notifModel.KindTripRequestReceived,
			"New trip request",
			"A custom trip request for "+tripRequest.TripRequestDestination+" is waiting for review.",
			map[string]interface{}{
				"trip_request_id": tripRequest.TripRequestID.String(),
			})
	}

	return helper.JsonCreated(c, "Trip request submitted", dto.ToTripRequestResponse(tripRequest))
}

// GET /api/u/trip-requests — my requests
func (ctl *TripRequestController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).
		Model(&model.TripRequestModel{}).
		Where("trip_request_user_id = ?", userID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count trip requests")
	}

	var requests []model.TripRequestModel
	if err := tx.Order("trip_request_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&requests).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list trip requests")
	}

	return helper.JsonList(c, "", dto.ToTripRequestResponseList(requests), helper.BuildPagination(total, paging))
}

// GET /api/a/trip-requests — triage queue
func (ctl *TripRequestController) ListAll(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)

	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.TripRequestModel{})
	if status := c.Query("status"); status != "" {
		tx = tx.Where("trip_request_status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count trip requests")
	}

	var requests []model.TripRequestModel
	if err := tx.Order("trip_request_created_at ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&requests).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list trip requests")
	}

	return helper.JsonList(c, "", dto.ToTripRequestResponseList(requests), helper.BuildPagination(total, paging))
}

// PATCH /api/a/trip-requests/:id — set status + admin notes
func (ctl *TripRequestController) Triage(c *fiber.Ctx) error {
	requestID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid trip request id")
	}

	var req dto.TriageTripRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var tripRequest model.TripRequestModel
	err = ctl.DB.WithContext(c.UserContext()).
		Where("trip_request_id = ?", requestID).
		First(&tripRequest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "trip request not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load trip request")
	}

	updates := map[string]interface{}{
		"trip_request_status": req.TripRequestStatus,
	}
	if req.TripRequestAdminNotes != "" {
		updates["trip_request_admin_notes"] = req.TripRequestAdminNotes
	}

	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&tripRequest).
		Updates(updates).Error; err != nil {
		return pgerr.Write(c, err)
	}

	return helper.JsonUpdated(c, "Trip request updated", dto.ToTripRequestResponse(&tripRequest))
}
