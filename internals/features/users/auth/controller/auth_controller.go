package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userDTO "tripku_backend/internals/features/users/user/dto"
	userModel "tripku_backend/internals/features/users/user/model"
	"tripku_backend/internals/features/users/auth/service"
	helper "tripku_backend/internals/helpers"
	"tripku_backend/internals/helpers/pgerr"
)

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB, v *validator.Validate) *AuthController {
	return &AuthController{DB: db, Validate: v}
}

type RegisterRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/register
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.UserName = strings.TrimSpace(req.UserName)
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	hashed, err := service.HashPassword(req.Password)
	if err != nil {
		log.Printf("[Register] hash: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to process password")
	}

	user := userModel.UserModel{
		UserName:     req.UserName,
		UserEmail:    req.Email,
		UserPassword: hashed,
	}
	user.SetDefaultValues()

	if err := ctl.DB.WithContext(c.UserContext()).Create(&user).Error; err != nil {
		return pgerr.Write(c, err)
	}

	return helper.JsonCreated(c, "Account created", userDTO.ToUserResponse(&user))
}

// POST /api/auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var user userModel.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("user_email = ?", req.Email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load account")
	}

	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}
	if !service.CheckPassword(user.UserPassword, req.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := service.GenerateAccessToken(&user)
	if err != nil {
		log.Printf("[Login] token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to issue token")
	}

	return helper.JsonOK(c, "Login success", fiber.Map{
		"access_token": token,
		"user":         userDTO.ToUserResponse(&user),
	})
}
