package controller

import (
	"spendenlauf-api/core/controller"
	"spendenlauf-api/core/errors"
	"spendenlauf-api/modules/team/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TeamController handles team HTTP requests.
type TeamController struct {
	controller.BaseController
	TeamService service.TeamServiceInterface
}

func NewTeamController(svc service.TeamServiceInterface) *TeamController {
	return &TeamController{
		BaseController: controller.NewBaseController(),
		TeamService:    svc,
	}
}

// TeamLookupResponse is the public view returned by the join-field check.
type TeamLookupResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Lookup handles GET /events/:eventId/teams/lookup?identifier=… — the signup
// form checks a typed team code or name before submitting.
func (c *TeamController) Lookup(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("eventId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	identifier := ctx.QueryParam("identifier")
	team, appErr := c.TeamService.Resolve(ctx.Request().Context(), eventID, identifier)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, &TeamLookupResponse{Code: team.Code, Name: team.Name}, "Success")
}
