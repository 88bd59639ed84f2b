package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	jwtpkg "github.com/thqlabel/thqlabel/internal/pkg/jwt"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	"github.com/thqlabel/thqlabel/internal/pkg/requestcontext"
	"github.com/thqlabel/thqlabel/internal/utils"
)

const (
	// UserIDKey is the echo context key holding the authenticated user id
	UserIDKey = "user_id"
	// tokenQueryParam carries the token for clients that cannot set headers
	tokenQueryParam = "token"
)

// JWTAuthMiddleware authenticates the bearer token and stores the user id
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok := extractToken(c)
			if !ok {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			claims, err := jwtpkg.ValidateToken(tokenString, config)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			userID, err := jwtpkg.SubjectID(claims)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token: missing subject")
			}

			c.Set(UserIDKey, userID)
			req := c.Request()
			c.SetRequest(req.WithContext(requestcontext.WithUserID(req.Context(), userID)))
			return next(c)
		}
	}
}

// extractToken reads a Bearer token from the Authorization header or the token query parameter
func extractToken(c echo.Context) (string, bool) {
	if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if token := c.QueryParam(tokenQueryParam); token != "" {
		return token, true
	}
	return "", false
}

// UserID returns the authenticated user id set by JWTAuthMiddleware
func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(UserIDKey).(uuid.UUID)
	return id, ok
}
