package repository

import (
	"context"
	"database/sql"

	"spendenlauf-api/core/database"
	"spendenlauf-api/core/logger"
	"spendenlauf-api/modules/event/entity"

	"github.com/google/uuid"
)

// EventRepository handles event database operations.
type EventRepository struct {
	DB database.IDatabase
}

func NewEventRepository(db database.IDatabase) *EventRepository {
	return &EventRepository{DB: db}
}

// EventRepositoryInterface defines the repository contract.
type EventRepositoryInterface interface {
	GetOpenEvent(ctx context.Context) (*entity.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	List(ctx context.Context) ([]entity.Event, error)
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	SetRegistrationOpen(ctx context.Context, id uuid.UUID, open bool) error
}

// GetOpenEvent returns the event currently accepting registrations. The
// ordering makes the pick deterministic when more than one event is open.
func (r *EventRepository) GetOpenEvent(ctx context.Context) (*entity.Event, error) {
	query := `
		SELECT id, name, year, slug, registration_open, created_at
		FROM events
		WHERE registration_open = TRUE
		ORDER BY year DESC, created_at DESC
		LIMIT 1
	`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetOpenEvent", err)
		return nil, err
	}

	return &event, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `
		SELECT id, name, year, slug, registration_open, created_at
		FROM events WHERE id = $1
	`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetByID", err)
		return nil, err
	}

	return &event, nil
}

func (r *EventRepository) List(ctx context.Context) ([]entity.Event, error) {
	query := `
		SELECT id, name, year, slug, registration_open, created_at
		FROM events
		ORDER BY year DESC, created_at DESC
	`

	var events []entity.Event
	err := r.DB.SelectContext(ctx, &events, query)
	if err != nil {
		logger.Error("EventRepository:List", err)
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (name, year, slug, registration_open)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, year, slug, registration_open, created_at
	`

	var created entity.Event
	err := r.DB.GetContext(ctx, &created, query,
		event.Name, event.Year, event.Slug, event.RegistrationOpen)
	if err != nil {
		logger.Error("EventRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

// SetRegistrationOpen toggles the flag. Opening an event closes every other
// one in the same statement, keeping the single-open-event invariant.
func (r *EventRepository) SetRegistrationOpen(ctx context.Context, id uuid.UUID, open bool) error {
	var query string
	if open {
		query = `UPDATE events SET registration_open = (id = $1)`
	} else {
		query = `UPDATE events SET registration_open = FALSE WHERE id = $1`
	}

	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("EventRepository:SetRegistrationOpen", err)
		return err
	}
	return nil
}
