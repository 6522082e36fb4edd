package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "tripku_backend/internals/features/users/auth/controller"
	"tripku_backend/internals/middlewares"
)

func AuthRoutes(app *fiber.App, db *gorm.DB, v *validator.Validate) {
	ctl := authController.NewAuthController(db, v)

	auth := app.Group("/api/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
}
