package router

import (
	"spendenlauf-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

// AuthRouter handles auth routes
type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{AuthController: authController}
}

// Setup registers auth routes
func (r *AuthRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	v1.POST("/auth/login", r.AuthController.Login)
}
