package controller

import (
	"spendenlauf-api/core/controller"
	"spendenlauf-api/core/errors"
	"spendenlauf-api/modules/registration/dto"
	"spendenlauf-api/modules/registration/service"

	"github.com/labstack/echo/v4"
)

// RegistrationController handles the three public signup endpoints.
type RegistrationController struct {
	controller.BaseController
	RegistrationService service.RegistrationServiceInterface
}

func NewRegistrationController(svc service.RegistrationServiceInterface) *RegistrationController {
	return &RegistrationController{
		BaseController:      controller.NewBaseController(),
		RegistrationService: svc,
	}
}

// RegisterIndividual handles POST /registrations/individual
func (c *RegistrationController) RegisterIndividual(ctx echo.Context) error {
	var req dto.IndividualRegistrationRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, fieldErrs, appErr := c.RegistrationService.RegisterIndividual(ctx.Request().Context(), &req)
	if len(fieldErrs) > 0 {
		return c.FieldErrorsResponse(ctx, fieldErrs)
	}
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Anmeldung erfolgreich")
}

// RegisterTeam handles POST /registrations/team
func (c *RegistrationController) RegisterTeam(ctx echo.Context) error {
	var req dto.TeamRegistrationRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, fieldErrs, appErr := c.RegistrationService.RegisterTeam(ctx.Request().Context(), &req)
	if len(fieldErrs) > 0 {
		return c.FieldErrorsResponse(ctx, fieldErrs)
	}
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Team-Anmeldung erfolgreich")
}

// RegisterChildren handles POST /registrations/children
func (c *RegistrationController) RegisterChildren(ctx echo.Context) error {
	var req dto.ChildrenRegistrationRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, fieldErrs, appErr := c.RegistrationService.RegisterChildren(ctx.Request().Context(), &req)
	if len(fieldErrs) > 0 {
		return c.FieldErrorsResponse(ctx, fieldErrs)
	}
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Anmeldung erfolgreich")
}
