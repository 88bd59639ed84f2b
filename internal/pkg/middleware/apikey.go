package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thqlabel/thqlabel/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

const (
	APIKeyHeader = "X-API-Key"
)

// HashAPIKey returns the bcrypt hash stored in configuration for key
func HashAPIKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ValidateAPIKey checks the X-API-Key header against a bcrypt hash.
// An empty hash disables the protected endpoints entirely.
func ValidateAPIKey(keyHash string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if keyHash == "" {
				return utils.ErrorResponseHandler(c, http.StatusForbidden, "API key access is disabled")
			}

			apiKey := c.Request().Header.Get(APIKeyHeader)
			if apiKey == "" {
				return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "API key is required")
			}

			if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(apiKey)); err != nil {
				return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "Invalid API key")
			}

			return next(c)
		}
	}
}
