package middleware

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/touchly/directory/cmd/api/service"
	"github.com/touchly/directory/common/apperr"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated user id
	UserIDKey ContextKey = "user_id"
)

// RequireAuth validates the Authorization bearer token and stores the
// authenticated user id in the request context.
//
// Accessing in handlers:
//
//	userID, err := middleware.GetUserID(c)
func RequireAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return apperr.Unauthorized(nil, "missing authorization header")
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return apperr.Unauthorized(nil, "invalid authorization header")
			}

			claims := &service.Claims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return apperr.Unauthorized(err, "invalid token")
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return apperr.Unauthorized(err, "invalid token")
			}

			c.Set(string(UserIDKey), userID)

			return next(c)
		}
	}
}

// RequireAPIKey guards admin routes behind a shared X-Api-Key header
func RequireAPIKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("X-Api-Key") != key {
				return apperr.Unauthorized(nil, "invalid api key")
			}
			return next(c)
		}
	}
}

// GetUserID retrieves the authenticated user id from the request context
func GetUserID(c echo.Context) (uuid.UUID, error) {
	v := c.Get(string(UserIDKey))
	userID, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil, apperr.Unauthorized(nil, "not authenticated")
	}
	return userID, nil
}
