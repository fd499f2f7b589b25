package controller

import (
	"spendenlauf-api/core/controller"
	"spendenlauf-api/core/errors"
	"spendenlauf-api/modules/event/dto"
	"spendenlauf-api/modules/event/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// EventController handles event HTTP requests.
type EventController struct {
	controller.BaseController
	EventService service.EventServiceInterface
}

func NewEventController(svc service.EventServiceInterface) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		EventService:   svc,
	}
}

// GetCurrent handles GET /events/current — the event the forms register for.
func (c *EventController) GetCurrent(ctx echo.Context) error {
	result, appErr := c.EventService.GetCurrent(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// List handles GET /private/events
func (c *EventController) List(ctx echo.Context) error {
	result, appErr := c.EventService.List(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// Create handles POST /private/events
func (c *EventController) Create(ctx echo.Context) error {
	var req dto.CreateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.EventService.CreateEvent(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Event created successfully")
}

// OpenRegistration handles POST /private/events/:id/open
func (c *EventController) OpenRegistration(ctx echo.Context) error {
	return c.setOpen(ctx, true)
}

// CloseRegistration handles POST /private/events/:id/close
func (c *EventController) CloseRegistration(ctx echo.Context) error {
	return c.setOpen(ctx, false)
}

func (c *EventController) setOpen(ctx echo.Context, open bool) error {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	var appErr *errors.AppError
	if open {
		appErr = c.EventService.OpenRegistration(ctx.Request().Context(), eventID)
	} else {
		appErr = c.EventService.CloseRegistration(ctx.Request().Context(), eventID)
	}
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Registration status updated")
}
