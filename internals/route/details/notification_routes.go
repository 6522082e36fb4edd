package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notificationController "tripku_backend/internals/features/home/notifications/controller"
)

func NotificationRoutes(user fiber.Router, admin fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := notificationController.NewNotificationController(db, v)

	user.Get("/notifications", ctl.ListMine)
	user.Patch("/notifications/:id/read", ctl.MarkRead)

	admin.Post("/notifications/broadcast", ctl.Broadcast)
}
