package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"spendenlauf-api/core/errors"
	"spendenlauf-api/core/logger"
	"spendenlauf-api/core/utils"
	"spendenlauf-api/modules/team/entity"
	"spendenlauf-api/modules/team/repository"

	"github.com/google/uuid"
)

// TeamService handles team resolution and creation.
type TeamService struct {
	repo repository.TeamRepositoryInterface
}

// TeamServiceInterface defines the service contract.
type TeamServiceInterface interface {
	Resolve(ctx context.Context, eventID uuid.UUID, identifier string) (*entity.Team, *errors.AppError)
	Create(ctx context.Context, eventID uuid.UUID, name string, sharedEmail bool, teamEmail *string) (*entity.Team, *errors.AppError)
	Delete(ctx context.Context, id uuid.UUID) error
}

func NewTeamService(repo repository.TeamRepositoryInterface) TeamServiceInterface {
	return &TeamService{repo: repo}
}

// NormalizeName lowercases a team name and strips all whitespace, so
// "Die Läufer" and "dieläufer " collide.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Resolve binds a human-entered identifier (team code or team name) to a team
// of the event. Zero matches fail the workflow before anything is written.
func (s *TeamService) Resolve(ctx context.Context, eventID uuid.UUID, identifier string) (*entity.Team, *errors.AppError) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Bitte gib einen Team-Code oder Teamnamen an.", nil)
	}

	team, err := s.repo.FindByCodeOrName(ctx, eventID, identifier)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Team konnte nicht gesucht werden.", err)
	}
	if team == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Team nicht gefunden. Bitte überprüfe den Team-Code.", nil)
	}

	return team, nil
}

// Create registers a new team after checking the event for a name collision.
// The collision message deliberately exposes the existing team's code so the
// submitter can choose to join that team instead.
func (s *TeamService) Create(ctx context.Context, eventID uuid.UUID, name string, sharedEmail bool, teamEmail *string) (*entity.Team, *errors.AppError) {
	existing, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Teams konnten nicht geladen werden.", err)
	}

	normalized := NormalizeName(name)
	for _, t := range existing {
		if NormalizeName(t.Name) == normalized {
			msg := fmt.Sprintf("Der Teamname ist bereits vergeben. Tritt dem Team mit dem Code %s bei oder wähle einen anderen Namen.", t.Code)
			return nil, errors.NewAppError(errors.ErrAlreadyExists, msg, nil)
		}
	}

	team := &entity.Team{
		EventID:     eventID,
		Code:        utils.GenerateTeamCode(),
		Name:        strings.TrimSpace(name),
		SharedEmail: sharedEmail,
		TeamEmail:   teamEmail,
	}

	created, err := s.repo.Create(ctx, team)
	if err != nil {
		return nil, errors.FromPostgres(err)
	}

	logger.Info("TeamService:Create:Success", "team_id", created.ID, "code", created.Code, "event_id", eventID)
	return created, nil
}

// Delete removes a team row. Used by saga compensation when later writes of a
// submission fail.
func (s *TeamService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
