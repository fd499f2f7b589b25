package repository

import (
	"context"
	"database/sql"

	"spendenlauf-api/core/database"
	"spendenlauf-api/core/logger"
	"spendenlauf-api/modules/team/entity"

	"github.com/google/uuid"
)

// TeamRepository handles team database operations.
type TeamRepository struct {
	DB database.IDatabase
}

func NewTeamRepository(db database.IDatabase) *TeamRepository {
	return &TeamRepository{DB: db}
}

// TeamRepositoryInterface defines the repository contract.
type TeamRepositoryInterface interface {
	FindByCodeOrName(ctx context.Context, eventID uuid.UUID, identifier string) (*entity.Team, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.Team, error)
	Create(ctx context.Context, team *entity.Team) (*entity.Team, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// FindByCodeOrName resolves the identifier a runner typed into the join
// field. Codes are stored uppercase; names match case-insensitively. The
// lookup is scoped to the event so stale codes from earlier years never bind.
func (r *TeamRepository) FindByCodeOrName(ctx context.Context, eventID uuid.UUID, identifier string) (*entity.Team, error) {
	query := `
		SELECT id, event_id, code, name, shared_email, team_email, created_at
		FROM teams
		WHERE event_id = $1 AND (code = UPPER($2) OR LOWER(name) = LOWER($2))
		ORDER BY created_at ASC
		LIMIT 1
	`

	var team entity.Team
	err := r.DB.GetContext(ctx, &team, query, eventID, identifier)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TeamRepository:FindByCodeOrName", err)
		return nil, err
	}

	return &team, nil
}

func (r *TeamRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.Team, error) {
	query := `
		SELECT id, event_id, code, name, shared_email, team_email, created_at
		FROM teams
		WHERE event_id = $1
		ORDER BY created_at ASC
	`

	var teams []entity.Team
	err := r.DB.SelectContext(ctx, &teams, query, eventID)
	if err != nil {
		logger.Error("TeamRepository:ListByEvent", err)
		return nil, err
	}

	return teams, nil
}

func (r *TeamRepository) Create(ctx context.Context, team *entity.Team) (*entity.Team, error) {
	query := `
		INSERT INTO teams (event_id, code, name, shared_email, team_email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, event_id, code, name, shared_email, team_email, created_at
	`

	var created entity.Team
	err := r.DB.GetContext(ctx, &created, query,
		team.EventID, team.Code, team.Name, team.SharedEmail, team.TeamEmail)
	if err != nil {
		logger.Error("TeamRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

func (r *TeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM teams WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("TeamRepository:Delete", err)
		return err
	}
	return nil
}
