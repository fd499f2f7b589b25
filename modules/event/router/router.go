package router

import (
	"spendenlauf-api/core/middleware"
	"spendenlauf-api/modules/event/controller"

	"github.com/labstack/echo/v4"
)

// EventRouter handles event routes
type EventRouter struct {
	EventController *controller.EventController
}

func NewEventRouter(eventController *controller.EventController) *EventRouter {
	return &EventRouter{EventController: eventController}
}

// Setup registers event routes
func (r *EventRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	v1.GET("/events/current", r.EventController.GetCurrent)

	privateRoutes := v1.Group("/private/events", mw.AuthMiddleware())
	privateRoutes.GET("", r.EventController.List)
	privateRoutes.POST("", r.EventController.Create)
	privateRoutes.POST("/:id/open", r.EventController.OpenRegistration)
	privateRoutes.POST("/:id/close", r.EventController.CloseRegistration)
}
