package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "tripku_backend/internals/features/users/user/controller"
)

func UserRoutes(user fiber.Router, admin fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := userController.NewUserController(db, v)

	user.Get("/users/me", ctl.GetMe)
	user.Patch("/users/me", ctl.UpdateMe)

	admin.Get("/users", ctl.ListUsers)
	admin.Patch("/users/:id/active", ctl.SetActive)
}
