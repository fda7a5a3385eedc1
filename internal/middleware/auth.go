package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/rentwheels/fleet-api/internal/auth"
	"github.com/rentwheels/fleet-api/internal/config"
)

const (
	ContextUserID      = "userID"
	ContextUserRole    = "userRole"
	ContextTokenID     = "tokenID"
	ContextTokenExpiry = "tokenExpiry"
)

func AuthMiddleware(cfg *config.Config, denylist auth.TokenDenylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "missing_authorization_header", "message": "Authorization header is required."})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "invalid_authorization_header", "message": "Authorization header must be a bearer token."})
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "invalid_token", "message": "Token is invalid or expired."})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "invalid_token_claims", "message": "Token claims are malformed."})
			return
		}

		userID, ok1 := claims["sub"].(float64)
		role, ok2 := claims["role"].(string)
		jti, _ := claims["jti"].(string)
		exp, _ := claims["exp"].(float64)
		if !ok1 || !ok2 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "invalid_token_payload", "message": "Token payload is malformed."})
			return
		}

		if jti != "" {
			revoked, err := denylist.IsRevoked(c.Request.Context(), jti)
			if err != nil || revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "token_revoked", "message": "Token has been revoked."})
				return
			}
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextUserRole, role)
		c.Set(ContextTokenID, jti)
		c.Set(ContextTokenExpiry, time.Unix(int64(exp), 0))

		c.Next()
	}
}
