package timeslot

import (
	"spendenlauf-api/core/database"
	"spendenlauf-api/core/middleware"
	"spendenlauf-api/modules/timeslot/controller"
	"spendenlauf-api/modules/timeslot/repository"
	"spendenlauf-api/modules/timeslot/router"
	"spendenlauf-api/modules/timeslot/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the timeslot module and registers routes. The registration
// module resolves and auto-assigns timeslots through the returned service.
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware) service.TimeslotServiceInterface {
	repo := repository.NewTimeslotRepository(db)
	svc := service.NewTimeslotService(repo)
	ctrl := controller.NewTimeslotController(svc)
	rtr := router.NewTimeslotRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
