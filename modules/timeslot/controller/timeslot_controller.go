package controller

import (
	"spendenlauf-api/core/controller"
	"spendenlauf-api/core/errors"
	"spendenlauf-api/modules/timeslot/dto"
	"spendenlauf-api/modules/timeslot/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TimeslotController handles timeslot HTTP requests.
type TimeslotController struct {
	controller.BaseController
	TimeslotService service.TimeslotServiceInterface
}

func NewTimeslotController(svc service.TimeslotServiceInterface) *TimeslotController {
	return &TimeslotController{
		BaseController:  controller.NewBaseController(),
		TimeslotService: svc,
	}
}

// ListByEvent handles GET /events/:eventId/timeslots — the picker data for
// the signup forms, including current fill levels.
func (c *TimeslotController) ListByEvent(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("eventId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	result, appErr := c.TimeslotService.ListByEvent(ctx.Request().Context(), eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// Create handles POST /private/timeslots
func (c *TimeslotController) Create(ctx echo.Context) error {
	var req dto.CreateTimeslotRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.TimeslotService.Create(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Timeslot created successfully")
}
