package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"tripku_backend/internals/configs"
	userModel "tripku_backend/internals/features/users/user/model"
)

// AccessTokenTTL is how long an issued access token remains valid.
const AccessTokenTTL = 24 * time.Hour

// GenerateAccessToken issues a signed HS256 access token for a user.
// Claims are the ones AuthMiddleware expects: id, role, user_name, exp.
func GenerateAccessToken(u *userModel.UserModel) (string, error) {
	if configs.JWTSecret == "" {
		return "", fmt.Errorf("JWT_SECRET is not configured")
	}

	claims := jwt.MapClaims{
		"id":        u.UserID.String(),
		"role":      u.UserRole,
		"user_name": u.UserName,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(AccessTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
