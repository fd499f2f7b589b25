package event

import (
	"spendenlauf-api/core/database"
	"spendenlauf-api/core/middleware"
	"spendenlauf-api/modules/event/controller"
	"spendenlauf-api/modules/event/repository"
	"spendenlauf-api/modules/event/router"
	"spendenlauf-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the event module and registers routes. The service is
// returned because the registration module resolves the open event through it.
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware) service.EventServiceInterface {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo)
	ctrl := controller.NewEventController(svc)
	rtr := router.NewEventRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
