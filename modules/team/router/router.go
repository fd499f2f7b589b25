package router

import (
	"spendenlauf-api/modules/team/controller"

	"github.com/labstack/echo/v4"
)

// TeamRouter handles team routes
type TeamRouter struct {
	TeamController *controller.TeamController
}

func NewTeamRouter(teamController *controller.TeamController) *TeamRouter {
	return &TeamRouter{TeamController: teamController}
}

// Setup registers team routes
func (r *TeamRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	v1.GET("/events/:eventId/teams/lookup", r.TeamController.Lookup)
}
