package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifService "tripku_backend/internals/features/home/notifications/service"
	paymentController "tripku_backend/internals/features/payment/controller"
)

// PaymentWebhookRoutes mounts the Midtrans callback outside the auth groups.
// The auth middleware also skips this path explicitly.
func PaymentWebhookRoutes(app *fiber.App, db *gorm.DB, v *validator.Validate, notifier *notifService.Dispatcher) {
	ctl := paymentController.NewPaymentController(db, v, notifier)

	app.Post("/api/payments/notification", ctl.HandleNotification)
}

func PaymentUserRoutes(user fiber.Router, db *gorm.DB, v *validator.Validate, notifier *notifService.Dispatcher) {
	ctl := paymentController.NewPaymentController(db, v, notifier)

	user.Post("/events/:id/pay", ctl.Checkout)
	user.Get("/payments", ctl.ListMine)
}

func PaymentAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate, notifier *notifService.Dispatcher) {
	ctl := paymentController.NewPaymentController(db, v, notifier)

	admin.Get("/payments", ctl.ListAll)
}
