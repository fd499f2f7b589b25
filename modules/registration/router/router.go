package router

import (
	"spendenlauf-api/modules/registration/controller"

	"github.com/labstack/echo/v4"
)

// RegistrationRouter handles registration routes
type RegistrationRouter struct {
	RegistrationController *controller.RegistrationController
}

func NewRegistrationRouter(registrationController *controller.RegistrationController) *RegistrationRouter {
	return &RegistrationRouter{RegistrationController: registrationController}
}

// Setup registers the public signup routes. No auth: these are the forms.
func (r *RegistrationRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	registrations := v1.Group("/registrations")
	registrations.POST("/individual", r.RegistrationController.RegisterIndividual)
	registrations.POST("/team", r.RegistrationController.RegisterTeam)
	registrations.POST("/children", r.RegistrationController.RegisterChildren)
}
