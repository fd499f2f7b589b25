package service

import (
	"context"

	"spendenlauf-api/core/constants"
	"spendenlauf-api/core/errors"
	"spendenlauf-api/core/logger"
	"spendenlauf-api/modules/timeslot/dto"
	"spendenlauf-api/modules/timeslot/entity"
	"spendenlauf-api/modules/timeslot/repository"

	"github.com/google/uuid"
)

// TimeslotService handles timeslot business logic.
type TimeslotService struct {
	repo repository.TimeslotRepositoryInterface
}

// TimeslotServiceInterface defines the service contract.
type TimeslotServiceInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Timeslot, *errors.AppError)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]dto.TimeslotResponse, *errors.AppError)
	Create(ctx context.Context, req *dto.CreateTimeslotRequest) (*dto.TimeslotResponse, *errors.AppError)
	EnsureChildrenTimeslot(ctx context.Context, eventID uuid.UUID) (*entity.Timeslot, *errors.AppError)
}

func NewTimeslotService(repo repository.TimeslotRepositoryInterface) TimeslotServiceInterface {
	return &TimeslotService{repo: repo}
}

func (s *TimeslotService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Timeslot, *errors.AppError) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Startzeit konnte nicht geladen werden.", err)
	}
	if slot == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Startzeit nicht gefunden.", nil)
	}
	return slot, nil
}

func (s *TimeslotService) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]dto.TimeslotResponse, *errors.AppError) {
	slots, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Startzeiten konnten nicht geladen werden.", err)
	}

	result := make([]dto.TimeslotResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, *dto.ToTimeslotResponse(&slot))
	}
	return result, nil
}

func (s *TimeslotService) Create(ctx context.Context, req *dto.CreateTimeslotRequest) (*dto.TimeslotResponse, *errors.AppError) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Ungültige Veranstaltungs-ID.", err)
	}

	slot := &entity.Timeslot{
		EventID:   eventID,
		Name:      req.Name,
		TimeOfDay: req.TimeOfDay,
		Type:      entity.TimeslotTypeNormal,
		Capacity:  req.Capacity,
	}

	created, err := s.repo.Create(ctx, slot)
	if err != nil {
		return nil, errors.FromPostgres(err)
	}

	logger.Info("TimeslotService:Create:Success", "timeslot_id", created.ID, "event_id", eventID)
	return dto.ToTimeslotResponse(&entity.TimeslotWithFill{Timeslot: *created}), nil
}

// EnsureChildrenTimeslot provisions the default children's run slot for the
// event if it does not exist yet. Children are always assigned to this slot.
func (s *TimeslotService) EnsureChildrenTimeslot(ctx context.Context, eventID uuid.UUID) (*entity.Timeslot, *errors.AppError) {
	slot, err := s.repo.EnsureChildrenTimeslot(ctx, eventID,
		constants.ChildrenTimeslotName, constants.ChildrenTimeslotTime, constants.ChildrenTimeslotCapacity)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Kinderlauf-Startzeit konnte nicht angelegt werden.", err)
	}
	return slot, nil
}
