package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	callController "tripku_backend/internals/features/bookings/calls/controller"
	callService "tripku_backend/internals/features/bookings/calls/service"
	eventController "tripku_backend/internals/features/bookings/events/controller"
	eventService "tripku_backend/internals/features/bookings/events/service"
)

func BookingPublicRoutes(public fiber.Router, db *gorm.DB, v *validator.Validate) {
	events := eventController.NewEventController(db, v)

	public.Get("/events", events.List)
	public.Get("/events/:id", events.GetByID)
}

func BookingUserRoutes(user fiber.Router, db *gorm.DB, v *validator.Validate,
	registrationSvc *eventService.RegistrationService, callSvc *callService.CallService) {

	registrations := eventController.NewRegistrationController(db, v, registrationSvc)
	calls := callController.NewCallController(db, v, callSvc)

	user.Post("/events/:id/join", registrations.Join)
	user.Post("/events/:id/cancel", registrations.Cancel)
	user.Get("/registrations", registrations.ListMine)

	user.Post("/calls", calls.Schedule)
	user.Get("/calls", calls.ListMine)
	user.Patch("/calls/:id/reschedule", calls.Reschedule)
	user.Patch("/calls/:id/cancel", calls.Cancel)
}

func BookingAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate,
	registrationSvc *eventService.RegistrationService, callSvc *callService.CallService) {

	events := eventController.NewEventController(db, v)
	registrations := eventController.NewRegistrationController(db, v, registrationSvc)
	calls := callController.NewCallController(db, v, callSvc)

	admin.Post("/events", events.Create)
	admin.Patch("/events/:id", events.Update)
	admin.Delete("/events/:id", events.Delete)
	admin.Get("/events/:id/registrations", registrations.ListByEvent)
	admin.Patch("/events/:id/registrations/:userId/attended", registrations.MarkAttended)

	admin.Get("/calls", calls.ListAll)
	admin.Patch("/calls/:id/complete", calls.MarkCompleted)
	admin.Patch("/calls/:id/cancel", calls.Cancel)
	admin.Post("/calls/expire", calls.ExpirePast)
}
