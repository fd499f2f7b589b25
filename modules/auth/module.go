package auth

import (
	"spendenlauf-api/modules/auth/controller"
	"spendenlauf-api/modules/auth/router"
	"spendenlauf-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and registers routes.
func Init(e *echo.Echo) {
	svc := service.NewAuthService()
	ctrl := controller.NewAuthController(svc)
	rtr := router.NewAuthRouter(ctrl)

	rtr.Setup(e)
}
