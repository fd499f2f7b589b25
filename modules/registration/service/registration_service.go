package service

import (
	"context"
	"fmt"
	"strings"

	"spendenlauf-api/core/constants"
	"spendenlauf-api/core/errors"
	"spendenlauf-api/core/logger"
	"spendenlauf-api/core/ratelimit"
	"spendenlauf-api/core/tasks"
	eventservice "spendenlauf-api/modules/event/service"
	participantentity "spendenlauf-api/modules/participant/entity"
	participantrepo "spendenlauf-api/modules/participant/repository"
	"spendenlauf-api/modules/registration/dto"
	registrationrepo "spendenlauf-api/modules/registration/repository"
	teamservice "spendenlauf-api/modules/team/service"
	timeslotentity "spendenlauf-api/modules/timeslot/entity"
	timeslotservice "spendenlauf-api/modules/timeslot/service"

	"github.com/google/uuid"
)

// Dispatcher is the notification fan-out the saga hands its confirmations to.
// Declared here so the registration module does not depend on the
// notification module's concrete service.
type Dispatcher interface {
	DispatchConfirmations(payloads []tasks.ConfirmationEmailPayload)
}

// RegistrationService runs the submission workflow: validate, resolve event,
// resolve or create team, write participants, notify. Writes are sequential;
// on a failure after partial writes the collected compensations run in
// reverse order (see saga.go).
type RegistrationService struct {
	events       eventservice.EventServiceInterface
	teams        teamservice.TeamServiceInterface
	timeslots    timeslotservice.TimeslotServiceInterface
	participants participantrepo.ParticipantRepositoryInterface
	guardians    participantrepo.GuardianRepositoryInterface
	audit        registrationrepo.AuditRepositoryInterface
	limiter      ratelimit.Limiter
	dispatcher   Dispatcher
}

// RegistrationServiceInterface defines the service contract. The second
// return value carries field-keyed structural validation errors; it is
// mutually exclusive with the AppError.
type RegistrationServiceInterface interface {
	RegisterIndividual(ctx context.Context, req *dto.IndividualRegistrationRequest) (*dto.RegistrationResponse, map[string]string, *errors.AppError)
	RegisterTeam(ctx context.Context, req *dto.TeamRegistrationRequest) (*dto.RegistrationResponse, map[string]string, *errors.AppError)
	RegisterChildren(ctx context.Context, req *dto.ChildrenRegistrationRequest) (*dto.RegistrationResponse, map[string]string, *errors.AppError)
}

func NewRegistrationService(
	events eventservice.EventServiceInterface,
	teams teamservice.TeamServiceInterface,
	timeslots timeslotservice.TimeslotServiceInterface,
	participants participantrepo.ParticipantRepositoryInterface,
	guardians participantrepo.GuardianRepositoryInterface,
	audit registrationrepo.AuditRepositoryInterface,
	limiter ratelimit.Limiter,
	dispatcher Dispatcher,
) RegistrationServiceInterface {
	return &RegistrationService{
		events:       events,
		teams:        teams,
		timeslots:    timeslots,
		participants: participants,
		guardians:    guardians,
		audit:        audit,
		limiter:      limiter,
		dispatcher:   dispatcher,
	}
}

// ===================== Individual =====================

func (s *RegistrationService) RegisterIndividual(ctx context.Context, req *dto.IndividualRegistrationRequest) (*dto.RegistrationResponse, map[string]string, *errors.AppError) {
	if !ValidateCaptcha(req.Captcha.Answer, req.Captcha.Expected) {
		return nil, nil, errors.NewAppError(errors.ErrInvalidInput, "Die Rechenaufgabe wurde falsch beantwortet.", nil)
	}
	if fieldErrs := ValidateIndividual(req); len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}
	if appErr := s.semanticIndividual(req); appErr != nil {
		return nil, nil, appErr
	}
	if !s.limiter.Allow(constants.OpRegisterIndividual) {
		return nil, nil, errors.NewAppError(errors.ErrRateLimited, "Zu viele Anmeldeversuche. Bitte versuche es später erneut.", nil)
	}

	event, appErr := s.events.GetOpenEvent(ctx)
	if appErr != nil {
		return nil, nil, appErr
	}

	gender, _ := participantentity.ParseGender(req.Gender)
	participantType := participantentity.TypeAdult
	if req.Age < constants.ChildAgeThreshold {
		participantType = participantentity.TypeChild
	}

	// Children never choose a slot; the validator already rejected any
	// explicit selection, the service only trusts its own assignment.
	var slot *timeslotentity.Timeslot
	if participantType == participantentity.TypeChild {
		slot, appErr = s.timeslots.EnsureChildrenTimeslot(ctx, event.ID)
	} else {
		slot, appErr = s.resolveSlot(ctx, event.ID, req.TimeslotID)
	}
	if appErr != nil {
		return nil, nil, appErr
	}

	var teamID *uuid.UUID
	var teamName, teamCode string
	if req.JoinTeam {
		team, appErr := s.teams.Resolve(ctx, event.ID, req.TeamIdentifier)
		if appErr != nil {
			return nil, nil, appErr
		}
		teamID = &team.ID
		teamName = team.Name
		teamCode = team.Code
	}

	email := strings.TrimSpace(req.Email)
	created, err := s.participants.Insert(ctx, &participantentity.Participant{
		EventID:         event.ID,
		TeamID:          teamID,
		TimeslotID:      &slot.ID,
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		Email:           &email,
		Age:             req.Age,
		Gender:          gender,
		ParticipantType: participantType,
	})
	if err != nil {
		return nil, nil, s.insertError(err)
	}

	logger.Info("RegistrationService:RegisterIndividual:Success",
		"participant_id", created.ID, "event_id", event.ID, "timeslot_id", slot.ID)

	s.dispatcher.DispatchConfirmations([]tasks.ConfirmationEmailPayload{{
		Recipient: email,
		FirstName: created.FirstName,
		Kind:      tasks.KindIndividual,
		StartTime: slot.TimeOfDay,
	}})

	return &dto.RegistrationResponse{
		Kind:           string(tasks.KindIndividual),
		ParticipantIDs: []string{created.ID.String()},
		TeamName:       teamName,
		TeamCode:       teamCode,
		StartTime:      slot.TimeOfDay,
	}, nil, nil
}

// ===================== Team =====================

// memberPlan is the step-4 decision for one submitted team member: claim an
// existing standalone row or insert a fresh one.
type memberPlan struct {
	member   dto.TeamMember
	email    string
	gender   participantentity.Gender
	existing *participantentity.Participant
}

func (s *RegistrationService) RegisterTeam(ctx context.Context, req *dto.TeamRegistrationRequest) (*dto.RegistrationResponse, map[string]string, *errors.AppError) {
	if !ValidateCaptcha(req.Captcha.Answer, req.Captcha.Expected) {
		return nil, nil, errors.NewAppError(errors.ErrInvalidInput, "Die Rechenaufgabe wurde falsch beantwortet.", nil)
	}
	if fieldErrs := ValidateTeam(req); len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}
	if appErr := s.semanticTeam(req); appErr != nil {
		return nil, nil, appErr
	}
	if !s.limiter.Allow(constants.OpRegisterTeam) {
		return nil, nil, errors.NewAppError(errors.ErrRateLimited, "Zu viele Anmeldeversuche. Bitte versuche es später erneut.", nil)
	}

	event, appErr := s.events.GetOpenEvent(ctx)
	if appErr != nil {
		return nil, nil, appErr
	}

	slot, appErr := s.resolveSlot(ctx, event.ID, req.TimeslotID)
	if appErr != nil {
		return nil, nil, appErr
	}

	var teamEmail *string
	if req.SharedEmail {
		trimmed := strings.TrimSpace(req.TeamEmail)
		teamEmail = &trimmed
	}

	sg := newSaga(constants.OpRegisterTeam, s.audit)

	team, appErr := s.teams.Create(ctx, event.ID, req.TeamName, req.SharedEmail, teamEmail)
	if appErr != nil {
		// Nothing written yet, no cleanup needed.
		return nil, nil, appErr
	}
	teamID := team.ID
	sg.completed("delete_team", func(ctx context.Context) error {
		return s.teams.Delete(ctx, teamID)
	})

	// Decide insert vs. update for every member before writing anything to
	// participants. Someone who registered individually earlier is claimed
	// into the team instead of duplicated; someone already on a team blocks
	// the whole submission.
	var updates, inserts []memberPlan
	for _, m := range req.Members {
		email := strings.TrimSpace(m.Email)
		if req.SharedEmail {
			email = strings.TrimSpace(req.TeamEmail)
		}
		gender, _ := participantentity.ParseGender(m.Gender)

		existing, err := s.participants.FindAdultByIdentity(ctx, event.ID, m.FirstName, m.LastName, email)
		if err != nil {
			appErr := errors.NewAppError(errors.ErrInternalServer, "Anmeldung fehlgeschlagen. Bitte versuche es erneut.", err)
			sg.rollback(ctx, appErr)
			return nil, nil, appErr
		}

		plan := memberPlan{member: m, email: email, gender: gender, existing: existing}
		switch {
		case existing != nil && existing.TeamID != nil:
			appErr := errors.NewAppError(errors.ErrAlreadyExists,
				fmt.Sprintf("%s %s ist bereits in einem Team angemeldet.", m.FirstName, m.LastName), nil)
			sg.rollback(ctx, appErr)
			return nil, nil, appErr
		case existing != nil:
			updates = append(updates, plan)
		default:
			inserts = append(inserts, plan)
		}
	}

	participantIDs := make([]string, 0, len(req.Members))

	for _, u := range updates {
		pid := u.existing.ID
		if err := s.participants.ClaimIntoTeam(ctx, pid, team.ID, slot.ID, u.member.Age, u.gender); err != nil {
			appErr := errors.FromPostgres(err)
			sg.rollback(ctx, appErr)
			return nil, nil, appErr
		}
		sg.completed("revert_participant:"+pid.String(), func(ctx context.Context) error {
			return s.participants.RevertTeam(ctx, pid)
		})
		participantIDs = append(participantIDs, pid.String())
	}

	for _, in := range inserts {
		email := in.email
		created, err := s.participants.Insert(ctx, &participantentity.Participant{
			EventID:         event.ID,
			TeamID:          &teamID,
			TimeslotID:      &slot.ID,
			FirstName:       strings.TrimSpace(in.member.FirstName),
			LastName:        strings.TrimSpace(in.member.LastName),
			Email:           &email,
			Age:             in.member.Age,
			Gender:          in.gender,
			ParticipantType: participantentity.TypeAdult,
		})
		if err != nil {
			appErr := s.insertError(err)
			sg.rollback(ctx, appErr)
			return nil, nil, appErr
		}
		cid := created.ID
		sg.completed("delete_participant:"+cid.String(), func(ctx context.Context) error {
			return s.participants.Delete(ctx, cid)
		})
		participantIDs = append(participantIDs, cid.String())
	}

	logger.Info("RegistrationService:RegisterTeam:Success",
		"team_id", team.ID, "code", team.Code, "members", len(req.Members),
		"updated", len(updates), "inserted", len(inserts))

	s.dispatcher.DispatchConfirmations(s.teamConfirmations(req, team.Name, team.Code, slot.TimeOfDay))

	return &dto.RegistrationResponse{
		Kind:           string(tasks.KindTeam),
		ParticipantIDs: participantIDs,
		TeamName:       team.Name,
		TeamCode:       team.Code,
		StartTime:      slot.TimeOfDay,
	}, nil, nil
}

func (s *RegistrationService) teamConfirmations(req *dto.TeamRegistrationRequest, teamName, teamCode, startTime string) []tasks.ConfirmationEmailPayload {
	payloads := make([]tasks.ConfirmationEmailPayload, 0, len(req.Members)+1)
	for _, m := range req.Members {
		recipient := strings.TrimSpace(m.Email)
		if recipient == "" && req.SharedEmail {
			recipient = strings.TrimSpace(req.TeamEmail)
		}
		if recipient == "" {
			continue
		}
		payloads = append(payloads, tasks.ConfirmationEmailPayload{
			Recipient: recipient,
			FirstName: strings.TrimSpace(m.FirstName),
			Kind:      tasks.KindTeam,
			StartTime: startTime,
			TeamName:  teamName,
			TeamCode:  teamCode,
		})
	}
	if req.SharedEmail && strings.TrimSpace(req.TeamEmail) != "" {
		payloads = append(payloads, tasks.ConfirmationEmailPayload{
			Recipient: strings.TrimSpace(req.TeamEmail),
			FirstName: teamName,
			Kind:      tasks.KindTeam,
			StartTime: startTime,
			TeamName:  teamName,
			TeamCode:  teamCode,
		})
	}
	return payloads
}

// ===================== Children =====================

func (s *RegistrationService) RegisterChildren(ctx context.Context, req *dto.ChildrenRegistrationRequest) (*dto.RegistrationResponse, map[string]string, *errors.AppError) {
	if !ValidateCaptcha(req.Captcha.Answer, req.Captcha.Expected) {
		return nil, nil, errors.NewAppError(errors.ErrInvalidInput, "Die Rechenaufgabe wurde falsch beantwortet.", nil)
	}
	if fieldErrs := ValidateChildren(req); len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}
	if appErr := s.semanticChildren(req); appErr != nil {
		return nil, nil, appErr
	}
	if !s.limiter.Allow(constants.OpRegisterChildren) {
		return nil, nil, errors.NewAppError(errors.ErrRateLimited, "Zu viele Anmeldeversuche. Bitte versuche es später erneut.", nil)
	}

	event, appErr := s.events.GetOpenEvent(ctx)
	if appErr != nil {
		return nil, nil, appErr
	}

	slot, appErr := s.timeslots.EnsureChildrenTimeslot(ctx, event.ID)
	if appErr != nil {
		return nil, nil, appErr
	}

	sg := newSaga(constants.OpRegisterChildren, s.audit)

	var teamID *uuid.UUID
	var teamName, teamCode string
	switch {
	case req.JoinTeam:
		team, appErr := s.teams.Resolve(ctx, event.ID, req.TeamIdentifier)
		if appErr != nil {
			return nil, nil, appErr
		}
		teamID = &team.ID
		teamName = team.Name
		teamCode = team.Code
	case strings.TrimSpace(req.TeamName) != "":
		team, appErr := s.teams.Create(ctx, event.ID, req.TeamName, false, nil)
		if appErr != nil {
			return nil, nil, appErr
		}
		tid := team.ID
		teamID = &tid
		teamName = team.Name
		teamCode = team.Code
		sg.completed("delete_team", func(ctx context.Context) error {
			return s.teams.Delete(ctx, tid)
		})
	}

	address := strings.TrimSpace(req.GuardianAddress)
	var addressPtr *string
	if address != "" {
		addressPtr = &address
	}

	guardian, err := s.guardians.Create(ctx, &participantentity.Guardian{
		Name:    strings.TrimSpace(req.GuardianName),
		Email:   strings.TrimSpace(req.GuardianEmail),
		Phone:   strings.TrimSpace(req.GuardianPhone),
		Address: addressPtr,
	})
	if err != nil {
		appErr := errors.FromPostgres(err)
		sg.rollback(ctx, appErr)
		return nil, nil, appErr
	}
	gid := guardian.ID
	sg.completed("delete_guardian", func(ctx context.Context) error {
		return s.guardians.Delete(ctx, gid)
	})

	participantIDs := make([]string, 0, len(req.Children))
	for _, child := range req.Children {
		gender, _ := participantentity.ParseGender(child.Gender)
		created, err := s.participants.Insert(ctx, &participantentity.Participant{
			EventID:         event.ID,
			TeamID:          teamID,
			GuardianID:      &gid,
			TimeslotID:      &slot.ID,
			FirstName:       strings.TrimSpace(child.FirstName),
			LastName:        strings.TrimSpace(child.LastName),
			Age:             child.Age,
			Gender:          gender,
			ParticipantType: participantentity.TypeChild,
		})
		if err != nil {
			appErr := s.insertError(err)
			sg.rollback(ctx, appErr)
			return nil, nil, appErr
		}
		cid := created.ID
		sg.completed("delete_participant:"+cid.String(), func(ctx context.Context) error {
			return s.participants.Delete(ctx, cid)
		})
		participantIDs = append(participantIDs, cid.String())
	}

	logger.Info("RegistrationService:RegisterChildren:Success",
		"guardian_id", guardian.ID, "children", len(req.Children), "event_id", event.ID)

	s.dispatcher.DispatchConfirmations([]tasks.ConfirmationEmailPayload{{
		Recipient: guardian.Email,
		FirstName: guardian.Name,
		Kind:      tasks.KindChildren,
		StartTime: slot.TimeOfDay,
	}})

	return &dto.RegistrationResponse{
		Kind:           string(tasks.KindChildren),
		ParticipantIDs: participantIDs,
		TeamName:       teamName,
		TeamCode:       teamCode,
		StartTime:      slot.TimeOfDay,
	}, nil, nil
}

// ===================== Shared helpers =====================

// resolveSlot parses and loads an explicitly selected timeslot and checks it
// belongs to the event and is a regular start wave.
func (s *RegistrationService) resolveSlot(ctx context.Context, eventID uuid.UUID, timeslotID string) (*timeslotentity.Timeslot, *errors.AppError) {
	id, err := uuid.Parse(strings.TrimSpace(timeslotID))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Ungültige Startzeit.", err)
	}

	slot, appErr := s.timeslots.GetByID(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if slot.EventID != eventID {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Die Startzeit gehört nicht zur aktuellen Veranstaltung.", nil)
	}
	if slot.Type == timeslotentity.TimeslotTypeChildren {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Diese Startzeit ist dem Kinderlauf vorbehalten.", nil)
	}

	return slot, nil
}

func (s *RegistrationService) insertError(err error) *errors.AppError {
	if err == participantrepo.ErrTimeslotFull {
		return errors.NewAppError(errors.ErrTimeslotFull, "Die gewählte Startzeit ist leider bereits voll. Bitte wähle eine andere.", err)
	}
	return errors.FromPostgres(err)
}

// Semantic checks: content safety on top of the structural shape rules.

func (s *RegistrationService) semanticIndividual(req *dto.IndividualRegistrationRequest) *errors.AppError {
	if !ValidName(req.FirstName) || !ValidName(req.LastName) {
		return semanticNameError()
	}
	if !ValidEmailAddress(req.Email) {
		return semanticEmailError()
	}
	return nil
}

func (s *RegistrationService) semanticTeam(req *dto.TeamRegistrationRequest) *errors.AppError {
	for _, m := range req.Members {
		if !ValidName(m.FirstName) || !ValidName(m.LastName) {
			return semanticNameError()
		}
		if !req.SharedEmail && !ValidEmailAddress(m.Email) {
			return semanticEmailError()
		}
	}
	if req.SharedEmail && !ValidEmailAddress(req.TeamEmail) {
		return semanticEmailError()
	}
	return nil
}

func (s *RegistrationService) semanticChildren(req *dto.ChildrenRegistrationRequest) *errors.AppError {
	if !ValidName(req.GuardianName) {
		return semanticNameError()
	}
	if !ValidEmailAddress(req.GuardianEmail) {
		return semanticEmailError()
	}
	if !ValidGermanMobile(req.GuardianPhone) {
		return errors.NewAppError(errors.ErrValidation, "Bitte gib eine gültige deutsche Mobilnummer an.", nil)
	}
	for _, c := range req.Children {
		if !ValidName(c.FirstName) || !ValidName(c.LastName) {
			return semanticNameError()
		}
	}
	return nil
}

func semanticNameError() *errors.AppError {
	return errors.NewAppError(errors.ErrValidation, "Namen dürfen nur Buchstaben, Leerzeichen und Bindestriche enthalten.", nil)
}

func semanticEmailError() *errors.AppError {
	return errors.NewAppError(errors.ErrValidation, "Bitte gib eine gültige E-Mail-Adresse an.", nil)
}
