package repository

import (
	"context"
	"database/sql"
	"errors"

	"spendenlauf-api/core/database"
	"spendenlauf-api/core/logger"
	"spendenlauf-api/modules/participant/entity"

	"github.com/google/uuid"
)

// ErrTimeslotFull is returned when the capacity-guarded insert affects no
// rows because the target timeslot is already at capacity.
var ErrTimeslotFull = errors.New("timeslot capacity exceeded")

// ParticipantRepository handles participant database operations.
type ParticipantRepository struct {
	DB database.IDatabase
}

func NewParticipantRepository(db database.IDatabase) *ParticipantRepository {
	return &ParticipantRepository{DB: db}
}

// ParticipantRepositoryInterface defines the repository contract.
type ParticipantRepositoryInterface interface {
	Insert(ctx context.Context, p *entity.Participant) (*entity.Participant, error)
	FindAdultByIdentity(ctx context.Context, eventID uuid.UUID, firstName, lastName, email string) (*entity.Participant, error)
	ClaimIntoTeam(ctx context.Context, id, teamID, timeslotID uuid.UUID, age int, gender entity.Gender) error
	RevertTeam(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

const participantColumns = `
	id, event_id, team_id, guardian_id, timeslot_id,
	first_name, last_name, email, age, gender, participant_type, runner_number, created_at
`

// Insert writes a participant row. The insert is conditional on the target
// timeslot having free capacity; the count and the insert happen in one
// statement so concurrent submissions cannot both squeeze into the last spot.
func (r *ParticipantRepository) Insert(ctx context.Context, p *entity.Participant) (*entity.Participant, error) {
	query := `
		INSERT INTO participants
			(event_id, team_id, guardian_id, timeslot_id, first_name, last_name, email, age, gender, participant_type, runner_number)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		WHERE (SELECT COUNT(*) FROM participants WHERE timeslot_id = $4)
		    < (SELECT capacity FROM timeslots WHERE id = $4)
		RETURNING ` + participantColumns

	var created entity.Participant
	err := r.DB.GetContext(ctx, &created, query,
		p.EventID, p.TeamID, p.GuardianID, p.TimeslotID,
		p.FirstName, p.LastName, p.Email, p.Age, p.Gender, p.ParticipantType, p.RunnerNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTimeslotFull
		}
		logger.Error("ParticipantRepository:Insert", err)
		return nil, err
	}

	return &created, nil
}

// FindAdultByIdentity looks up a standalone or teamed adult by the identity
// the upsert policy matches on: first name, last name, email, event, adult.
func (r *ParticipantRepository) FindAdultByIdentity(ctx context.Context, eventID uuid.UUID, firstName, lastName, email string) (*entity.Participant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE event_id = $1
		  AND LOWER(first_name) = LOWER($2)
		  AND LOWER(last_name) = LOWER($3)
		  AND LOWER(email) = LOWER($4)
		  AND participant_type = 'adult'
		LIMIT 1
	`

	var p entity.Participant
	err := r.DB.GetContext(ctx, &p, query, eventID, firstName, lastName, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ParticipantRepository:FindAdultByIdentity", err)
		return nil, err
	}

	return &p, nil
}

// ClaimIntoTeam promotes a previously standalone participant into a team,
// refreshing the mutable fields the team form re-collected.
func (r *ParticipantRepository) ClaimIntoTeam(ctx context.Context, id, teamID, timeslotID uuid.UUID, age int, gender entity.Gender) error {
	query := `
		UPDATE participants
		SET team_id = $2, timeslot_id = $3, age = $4, gender = $5
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query, id, teamID, timeslotID, age, gender)
	if err != nil {
		logger.Error("ParticipantRepository:ClaimIntoTeam", err)
		return err
	}
	return nil
}

// RevertTeam is the compensating update for ClaimIntoTeam: the team reference
// goes back to NULL. The timeslot is left as assigned; a reverted runner still
// holds a start wave, just no team.
func (r *ParticipantRepository) RevertTeam(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE participants SET team_id = NULL WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("ParticipantRepository:RevertTeam", err)
		return err
	}
	return nil
}

func (r *ParticipantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM participants WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("ParticipantRepository:Delete", err)
		return err
	}
	return nil
}
