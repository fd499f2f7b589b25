package service

import (
	"context"
	"fmt"

	"spendenlauf-api/core/errors"
	"spendenlauf-api/core/logger"
	"spendenlauf-api/modules/event/dto"
	"spendenlauf-api/modules/event/entity"
	"spendenlauf-api/modules/event/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// EventService handles event business logic.
type EventService struct {
	repo repository.EventRepositoryInterface
}

// EventServiceInterface defines the service contract.
type EventServiceInterface interface {
	GetOpenEvent(ctx context.Context) (*entity.Event, *errors.AppError)
	GetCurrent(ctx context.Context) (*dto.EventResponse, *errors.AppError)
	List(ctx context.Context) ([]dto.EventResponse, *errors.AppError)
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	OpenRegistration(ctx context.Context, id uuid.UUID) *errors.AppError
	CloseRegistration(ctx context.Context, id uuid.UUID) *errors.AppError
}

func NewEventService(repo repository.EventRepositoryInterface) EventServiceInterface {
	return &EventService{repo: repo}
}

// GetOpenEvent resolves the single event currently accepting registrations.
// Every registration workflow starts here and stays bound to the result.
func (s *EventService) GetOpenEvent(ctx context.Context) (*entity.Event, *errors.AppError) {
	event, err := s.repo.GetOpenEvent(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Veranstaltung konnte nicht geladen werden.", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNoOpenEvent, "Aktuell ist keine Anmeldung geöffnet.", nil)
	}
	return event, nil
}

// GetCurrent is the public view of the open event.
func (s *EventService) GetCurrent(ctx context.Context) (*dto.EventResponse, *errors.AppError) {
	event, appErr := s.GetOpenEvent(ctx)
	if appErr != nil {
		return nil, appErr
	}
	return dto.ToEventResponse(event), nil
}

func (s *EventService) List(ctx context.Context) ([]dto.EventResponse, *errors.AppError) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Veranstaltungen konnten nicht geladen werden.", err)
	}

	result := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		result = append(result, *dto.ToEventResponse(&e))
	}
	return result, nil
}

// CreateEvent creates a new yearly event. New events start with registration
// closed; an admin opens it explicitly.
func (s *EventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	event := &entity.Event{
		Name:             req.Name,
		Year:             req.Year,
		Slug:             slug.MakeLang(fmt.Sprintf("%s %d", req.Name, req.Year), "de"),
		RegistrationOpen: false,
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, errors.FromPostgres(err)
	}

	logger.Info("EventService:CreateEvent:Success", "event_id", created.ID, "slug", created.Slug)
	return dto.ToEventResponse(created), nil
}

func (s *EventService) OpenRegistration(ctx context.Context, id uuid.UUID) *errors.AppError {
	return s.setOpen(ctx, id, true)
}

func (s *EventService) CloseRegistration(ctx context.Context, id uuid.UUID) *errors.AppError {
	return s.setOpen(ctx, id, false)
}

func (s *EventService) setOpen(ctx context.Context, id uuid.UUID, open bool) *errors.AppError {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Veranstaltung konnte nicht geladen werden.", err)
	}
	if event == nil {
		return errors.NewAppError(errors.ErrNotFound, "Veranstaltung nicht gefunden.", nil)
	}

	if err := s.repo.SetRegistrationOpen(ctx, id, open); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Anmeldestatus konnte nicht geändert werden.", err)
	}

	logger.Info("EventService:setOpen:Success", "event_id", id, "open", open)
	return nil
}
