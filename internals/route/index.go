package routes

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	callService "tripku_backend/internals/features/bookings/calls/service"
	eventService "tripku_backend/internals/features/bookings/events/service"
	notifService "tripku_backend/internals/features/home/notifications/service"
	"tripku_backend/internals/configs"
	"tripku_backend/internals/constants"
	"tripku_backend/internals/helpers/calendar"
	authMiddleware "tripku_backend/internals/middlewares/auth"
	routeDetails "tripku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()
	validate := validator.New()

	// shared services
	notifier := notifService.NewDispatcher(db)
	calendarClient := calendar.NewClientFromEnv()
	callSvc := callService.NewCallService(db, calendarClient, notifier, configs.DefaultMeetingLink)
	registrationSvc := eventService.NewRegistrationService(db, notifier)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up auth routes...")
	routeDetails.AuthRoutes(app, db, validate)

	// webhook is unauthenticated, mounted outside the groups
	routeDetails.PaymentWebhookRoutes(app, db, validate, notifier)

	// ===================== GROUPS =====================
	public := app.Group("/api/public")

	user := app.Group("/api/u",
		authMiddleware.AuthMiddleware(db),
	)

	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("this area"), constants.AdminAndAbove...),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting user routes...")
	routeDetails.UserRoutes(user, admin, db, validate)

	log.Println("[INFO] Mounting travel routes...")
	routeDetails.TravelPublicRoutes(public, db, validate)
	routeDetails.TravelUserRoutes(user, db, validate, notifier)
	routeDetails.TravelAdminRoutes(admin, db, validate)

	log.Println("[INFO] Mounting booking routes...")
	routeDetails.BookingPublicRoutes(public, db, validate)
	routeDetails.BookingUserRoutes(user, db, validate, registrationSvc, callSvc)
	routeDetails.BookingAdminRoutes(admin, db, validate, registrationSvc, callSvc)

	log.Println("[INFO] Mounting notification routes...")
	routeDetails.NotificationRoutes(user, admin, db, validate)

	log.Println("[INFO] Mounting payment routes...")
	routeDetails.PaymentUserRoutes(user, db, validate, notifier)
	routeDetails.PaymentAdminRoutes(admin, db, validate, notifier)
}
