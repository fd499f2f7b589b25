package team

import (
	"spendenlauf-api/core/database"
	"spendenlauf-api/modules/team/controller"
	"spendenlauf-api/modules/team/repository"
	"spendenlauf-api/modules/team/router"
	"spendenlauf-api/modules/team/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the team module and registers routes. The registration
// saga creates and resolves teams through the returned service.
func Init(e *echo.Echo, db database.IDatabase) service.TeamServiceInterface {
	repo := repository.NewTeamRepository(db)
	svc := service.NewTeamService(repo)
	ctrl := controller.NewTeamController(svc)
	rtr := router.NewTeamRouter(ctrl)

	rtr.Setup(e)
	return svc
}
