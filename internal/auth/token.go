package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rentwheels/fleet-api/internal/models"
)

const TokenTTL = 24 * time.Hour

// GenerateToken mints an HS256 token carrying the user id, role and a
// unique jti. The jti is what the logout denylist keys on.
func GenerateToken(user *models.User, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"jti":  uuid.NewString(),
		"exp":  now.Add(TokenTTL).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
