package router

import (
	"spendenlauf-api/core/middleware"
	"spendenlauf-api/modules/timeslot/controller"

	"github.com/labstack/echo/v4"
)

// TimeslotRouter handles timeslot routes
type TimeslotRouter struct {
	TimeslotController *controller.TimeslotController
}

func NewTimeslotRouter(timeslotController *controller.TimeslotController) *TimeslotRouter {
	return &TimeslotRouter{TimeslotController: timeslotController}
}

// Setup registers timeslot routes
func (r *TimeslotRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	v1.GET("/events/:eventId/timeslots", r.TimeslotController.ListByEvent)

	privateRoutes := v1.Group("/private/timeslots", mw.AuthMiddleware())
	privateRoutes.POST("", r.TimeslotController.Create)
}
