package repository

import (
	"context"
	"database/sql"

	"spendenlauf-api/core/database"
	"spendenlauf-api/core/logger"
	"spendenlauf-api/modules/timeslot/entity"

	"github.com/google/uuid"
)

// TimeslotRepository handles timeslot database operations.
type TimeslotRepository struct {
	DB database.IDatabase
}

func NewTimeslotRepository(db database.IDatabase) *TimeslotRepository {
	return &TimeslotRepository{DB: db}
}

// TimeslotRepositoryInterface defines the repository contract.
type TimeslotRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Timeslot, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.TimeslotWithFill, error)
	Create(ctx context.Context, slot *entity.Timeslot) (*entity.Timeslot, error)
	EnsureChildrenTimeslot(ctx context.Context, eventID uuid.UUID, name, timeOfDay string, capacity int) (*entity.Timeslot, error)
}

func (r *TimeslotRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Timeslot, error) {
	query := `
		SELECT id, event_id, name, time_of_day, slot_type, capacity, created_at
		FROM timeslots WHERE id = $1
	`

	var slot entity.Timeslot
	err := r.DB.GetContext(ctx, &slot, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TimeslotRepository:GetByID", err)
		return nil, err
	}

	return &slot, nil
}

// ListByEvent returns the event's timeslots with their current fill level.
// The count is computed at read time and may lag behind concurrent inserts;
// the hard capacity check happens in the participant insert itself.
func (r *TimeslotRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.TimeslotWithFill, error) {
	query := `
		SELECT t.id, t.event_id, t.name, t.time_of_day, t.slot_type, t.capacity, t.created_at,
		       COUNT(p.id) AS registered
		FROM timeslots t
		LEFT JOIN participants p ON p.timeslot_id = t.id
		WHERE t.event_id = $1
		GROUP BY t.id
		ORDER BY t.time_of_day ASC
	`

	var slots []entity.TimeslotWithFill
	err := r.DB.SelectContext(ctx, &slots, query, eventID)
	if err != nil {
		logger.Error("TimeslotRepository:ListByEvent", err)
		return nil, err
	}

	return slots, nil
}

func (r *TimeslotRepository) Create(ctx context.Context, slot *entity.Timeslot) (*entity.Timeslot, error) {
	query := `
		INSERT INTO timeslots (event_id, name, time_of_day, slot_type, capacity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, event_id, name, time_of_day, slot_type, capacity, created_at
	`

	var created entity.Timeslot
	err := r.DB.GetContext(ctx, &created, query,
		slot.EventID, slot.Name, slot.TimeOfDay, slot.Type, slot.Capacity)
	if err != nil {
		logger.Error("TimeslotRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

// EnsureChildrenTimeslot idempotently provisions the default children's
// timeslot for the event and returns it.
func (r *TimeslotRepository) EnsureChildrenTimeslot(ctx context.Context, eventID uuid.UUID, name, timeOfDay string, capacity int) (*entity.Timeslot, error) {
	insert := `
		INSERT INTO timeslots (event_id, name, time_of_day, slot_type, capacity)
		VALUES ($1, $2, $3, 'children', $4)
		ON CONFLICT (event_id) WHERE slot_type = 'children' DO NOTHING
	`
	if err := r.DB.ExecContext(ctx, insert, eventID, name, timeOfDay, capacity); err != nil {
		logger.Error("TimeslotRepository:EnsureChildrenTimeslot:Insert", err)
		return nil, err
	}

	query := `
		SELECT id, event_id, name, time_of_day, slot_type, capacity, created_at
		FROM timeslots
		WHERE event_id = $1 AND slot_type = 'children'
		LIMIT 1
	`

	var slot entity.Timeslot
	if err := r.DB.GetContext(ctx, &slot, query, eventID); err != nil {
		logger.Error("TimeslotRepository:EnsureChildrenTimeslot:Select", err)
		return nil, err
	}

	return &slot, nil
}
