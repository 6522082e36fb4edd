package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tripku_backend/internals/features/bookings/events/dto"
	"tripku_backend/internals/features/bookings/events/model"
	helper "tripku_backend/internals/helpers"
	"tripku_backend/internals/helpers/pgerr"
)

type EventController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewEventController(db *gorm.DB, v *validator.Validate) *EventController {
	return &EventController{DB: db, Validate: v}
}

// POST /api/a/events
func (ctl *EventController) Create(c *fiber.Ctx) error {
	adminID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	joinTill := req.EventDate
	if req.EventJoinTill != nil {
		joinTill = *req.EventJoinTill
	}
	if joinTill.After(req.EventDate) {
		return helper.JsonError(c, fiber.StatusBadRequest, "event_join_till must not be after event_date")
	}

	base := helper.GenerateSlug(req.EventTitle)
	slug, err := helper.EnsureUniqueSlug(ctl.DB.WithContext(c.UserContext()), "events", "event_slug", base)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to generate slug")
	}

	event := model.EventModel{
		EventAdventureID: req.EventAdventureID,
		EventTitle:       strings.TrimSpace(req.EventTitle),
		EventSlug:        slug,
		EventDescription: req.EventDescription,
		EventLocation:    req.EventLocation,
		EventPrice:       req.EventPrice,
		EventSpotTotal:   req.EventSpotTotal,
		EventSpotLeft:    req.EventSpotTotal,
		EventDate:        req.EventDate,
		EventJoinTill:    joinTill,
		EventCreatedBy:   adminID,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&event).Error; err != nil {
		return pgerr.Write(c, err)
	}

	return helper.JsonCreated(c, "Event created", dto.ToEventResponse(&event))
}

// GET /api/public/events
func (ctl *EventController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.EventModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		kw := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(event_title) LIKE ? OR LOWER(event_location) LIKE ?", kw, kw)
	}
	if upcoming, ok := helper.ParseBoolLoose(c.Query("upcoming")); ok && upcoming {
		tx = tx.Where("event_date >= NOW()")
	}
	if adventureID := strings.TrimSpace(c.Query("adventure_id")); adventureID != "" {
		tx = tx.Where("event_adventure_id = ?", adventureID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count events")
	}

	var events []model.EventModel
	if err := tx.Order("event_date ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&events).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list events")
	}

	return helper.JsonList(c, "", dto.ToEventResponseList(events), helper.BuildPagination(total, paging))
}

// GET /api/public/events/:id
func (ctl *EventController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid event id")
	}

	var event model.EventModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("event_id = ?", id).
		First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load event")
	}

	return helper.JsonOK(c, "", dto.ToEventResponse(&event))
}

// PATCH /api/a/events/:id
func (ctl *EventController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid event id")
	}

	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updates := map[string]any{}
	if req.EventTitle != nil {
		updates["event_title"] = strings.TrimSpace(*req.EventTitle)
	}
	if req.EventDescription != nil {
		updates["event_description"] = *req.EventDescription
	}
	if req.EventLocation != nil {
		updates["event_location"] = *req.EventLocation
	}
	if req.EventDate != nil {
		updates["event_date"] = *req.EventDate
	}
	if req.EventJoinTill != nil {
		updates["event_join_till"] = *req.EventJoinTill
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "nothing to update")
	}

	var event model.EventModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("event_id = ?", id).
		First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load event")
	}

	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&event).Updates(updates).Error; err != nil {
		return pgerr.Write(c, err)
	}

	return helper.JsonUpdated(c, "Event updated", dto.ToEventResponse(&event))
}

// DELETE /api/a/events/:id (soft delete)
func (ctl *EventController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid event id")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Where("event_id = ?", id).
		Delete(&model.EventModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete event")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}

	return helper.JsonDeleted(c, "Event deleted", fiber.Map{"event_id": id})
}
