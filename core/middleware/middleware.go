package middleware

import (
	"strings"

	"spendenlauf-api/core/constants"
	"spendenlauf-api/core/controller"
	"spendenlauf-api/core/errors"
	"spendenlauf-api/core/logger"
	"spendenlauf-api/core/utils"

	"github.com/labstack/echo/v4"
)

// Middleware bundles route middleware so modules receive one dependency.
type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

// AuthMiddleware validates the Bearer token and stores its claims in the
// request context under constants.ContextTokenData.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "Authorization header is required")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "Authorization header must be a Bearer token")
			}

			claims, err := utils.ParseToken(parts[1])
			if err != nil {
				logger.Warn("Middleware:Auth:InvalidToken", "error", err)
				return controller.NewErrorResponse(401, errors.ErrTokenExpired, "Invalid or expired token")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}
