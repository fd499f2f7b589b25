package registration

import (
	"spendenlauf-api/core/database"
	"spendenlauf-api/core/ratelimit"
	eventservice "spendenlauf-api/modules/event/service"
	participantrepo "spendenlauf-api/modules/participant/repository"
	"spendenlauf-api/modules/registration/controller"
	"spendenlauf-api/modules/registration/repository"
	"spendenlauf-api/modules/registration/router"
	"spendenlauf-api/modules/registration/service"
	teamservice "spendenlauf-api/modules/team/service"
	timeslotservice "spendenlauf-api/modules/timeslot/service"

	"github.com/labstack/echo/v4"
)

// Init wires the registration workflow. The event, team and timeslot services
// come from their modules; limiter and dispatcher are built by the server
// since their backends (Redis, asynq) are shared process-wide.
func Init(
	e *echo.Echo,
	db database.IDatabase,
	events eventservice.EventServiceInterface,
	teams teamservice.TeamServiceInterface,
	timeslots timeslotservice.TimeslotServiceInterface,
	limiter ratelimit.Limiter,
	dispatcher service.Dispatcher,
) {
	participants := participantrepo.NewParticipantRepository(db)
	guardians := participantrepo.NewGuardianRepository(db)
	audit := repository.NewAuditRepository(db)

	svc := service.NewRegistrationService(events, teams, timeslots, participants, guardians, audit, limiter, dispatcher)
	ctrl := controller.NewRegistrationController(svc)
	rtr := router.NewRegistrationRouter(ctrl)

	rtr.Setup(e)
}
