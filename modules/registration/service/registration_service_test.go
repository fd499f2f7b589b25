package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "spendenlauf-api/core/errors"
	"spendenlauf-api/core/tasks"
	eventservice "spendenlauf-api/modules/event/service"
	evententity "spendenlauf-api/modules/event/entity"
	participantentity "spendenlauf-api/modules/participant/entity"
	participantrepo "spendenlauf-api/modules/participant/repository"
	"spendenlauf-api/modules/registration/dto"
	teamentity "spendenlauf-api/modules/team/entity"
	timeslotentity "spendenlauf-api/modules/timeslot/entity"
	timeslotservice "spendenlauf-api/modules/timeslot/service"

	"github.com/google/uuid"
)

// ===================== fakes =====================

type fakeEventService struct {
	eventservice.EventServiceInterface
	event *evententity.Event
}

func (f *fakeEventService) GetOpenEvent(ctx context.Context) (*evententity.Event, *apperrors.AppError) {
	if f.event == nil {
		return nil, apperrors.NewAppError(apperrors.ErrNoOpenEvent, "Aktuell ist keine Anmeldung geöffnet.", nil)
	}
	return f.event, nil
}

type fakeTeamService struct {
	resolved  *teamentity.Team
	created   *teamentity.Team
	createErr *apperrors.AppError
	deleted   []uuid.UUID
	log       *[]string
}

func (f *fakeTeamService) Resolve(ctx context.Context, eventID uuid.UUID, identifier string) (*teamentity.Team, *apperrors.AppError) {
	if f.resolved == nil {
		return nil, apperrors.NewAppError(apperrors.ErrNotFound, "Team nicht gefunden. Bitte überprüfe den Team-Code.", nil)
	}
	return f.resolved, nil
}

func (f *fakeTeamService) Create(ctx context.Context, eventID uuid.UUID, name string, sharedEmail bool, teamEmail *string) (*teamentity.Team, *apperrors.AppError) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	team := &teamentity.Team{
		ID:          uuid.New(),
		EventID:     eventID,
		Code:        "AB23CD",
		Name:        strings.TrimSpace(name),
		SharedEmail: sharedEmail,
		TeamEmail:   teamEmail,
	}
	f.created = team
	return team, nil
}

func (f *fakeTeamService) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	if f.log != nil {
		*f.log = append(*f.log, "delete_team")
	}
	return nil
}

type fakeTimeslotService struct {
	timeslotservice.TimeslotServiceInterface
	slots    map[uuid.UUID]*timeslotentity.Timeslot
	children *timeslotentity.Timeslot
}

func (f *fakeTimeslotService) GetByID(ctx context.Context, id uuid.UUID) (*timeslotentity.Timeslot, *apperrors.AppError) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrNotFound, "Startzeit nicht gefunden.", nil)
	}
	return slot, nil
}

func (f *fakeTimeslotService) EnsureChildrenTimeslot(ctx context.Context, eventID uuid.UUID) (*timeslotentity.Timeslot, *apperrors.AppError) {
	return f.children, nil
}

type fakeParticipantRepo struct {
	existing      map[string]*participantentity.Participant
	failInsertFor map[string]error

	inserted []*participantentity.Participant
	claims   []uuid.UUID
	reverts  []uuid.UUID
	deletes  []uuid.UUID
	log      *[]string
}

func identityKey(firstName, lastName string) string {
	return strings.ToLower(firstName) + "|" + strings.ToLower(lastName)
}

func (f *fakeParticipantRepo) Insert(ctx context.Context, p *participantentity.Participant) (*participantentity.Participant, error) {
	if err, ok := f.failInsertFor[p.FirstName]; ok {
		return nil, err
	}
	created := *p
	created.ID = uuid.New()
	f.inserted = append(f.inserted, &created)
	return &created, nil
}

func (f *fakeParticipantRepo) FindAdultByIdentity(ctx context.Context, eventID uuid.UUID, firstName, lastName, email string) (*participantentity.Participant, error) {
	return f.existing[identityKey(firstName, lastName)], nil
}

func (f *fakeParticipantRepo) ClaimIntoTeam(ctx context.Context, id, teamID, timeslotID uuid.UUID, age int, gender participantentity.Gender) error {
	f.claims = append(f.claims, id)
	return nil
}

func (f *fakeParticipantRepo) RevertTeam(ctx context.Context, id uuid.UUID) error {
	f.reverts = append(f.reverts, id)
	if f.log != nil {
		*f.log = append(*f.log, "revert_participant")
	}
	return nil
}

func (f *fakeParticipantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deletes = append(f.deletes, id)
	if f.log != nil {
		*f.log = append(*f.log, "delete_participant")
	}
	return nil
}

type fakeGuardianRepo struct {
	createErr error
	created   *participantentity.Guardian
	deleted   []uuid.UUID
	log       *[]string
}

func (f *fakeGuardianRepo) Create(ctx context.Context, g *participantentity.Guardian) (*participantentity.Guardian, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *g
	created.ID = uuid.New()
	f.created = &created
	return &created, nil
}

func (f *fakeGuardianRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	if f.log != nil {
		*f.log = append(*f.log, "delete_guardian")
	}
	return nil
}

type stubLimiter struct{ allow bool }

func (s *stubLimiter) Allow(operation string) bool { return s.allow }

type fakeDispatcher struct {
	payloads []tasks.ConfirmationEmailPayload
}

func (f *fakeDispatcher) DispatchConfirmations(payloads []tasks.ConfirmationEmailPayload) {
	f.payloads = append(f.payloads, payloads...)
}

// ===================== harness =====================

type testEnv struct {
	service      RegistrationServiceInterface
	event        *evententity.Event
	slot         *timeslotentity.Timeslot
	childrenSlot *timeslotentity.Timeslot

	teams        *fakeTeamService
	participants *fakeParticipantRepo
	guardians    *fakeGuardianRepo
	audit        *fakeAuditRepo
	limiter      *stubLimiter
	dispatcher   *fakeDispatcher
	log          []string
}

func newTestEnv() *testEnv {
	event := &evententity.Event{ID: uuid.New(), Name: "Spendenlauf", Year: 2026, RegistrationOpen: true}
	slot := &timeslotentity.Timeslot{
		ID: uuid.New(), EventID: event.ID, Name: "Welle 1",
		TimeOfDay: "09:00", Type: timeslotentity.TimeslotTypeNormal, Capacity: 100,
	}
	childrenSlot := &timeslotentity.Timeslot{
		ID: uuid.New(), EventID: event.ID, Name: "Kinderlauf",
		TimeOfDay: "10:00", Type: timeslotentity.TimeslotTypeChildren, Capacity: 200,
	}

	env := &testEnv{event: event, slot: slot, childrenSlot: childrenSlot}
	env.teams = &fakeTeamService{log: &env.log}
	env.participants = &fakeParticipantRepo{
		existing:      map[string]*participantentity.Participant{},
		failInsertFor: map[string]error{},
		log:           &env.log,
	}
	env.guardians = &fakeGuardianRepo{log: &env.log}
	env.audit = &fakeAuditRepo{}
	env.limiter = &stubLimiter{allow: true}
	env.dispatcher = &fakeDispatcher{}

	env.service = NewRegistrationService(
		&fakeEventService{event: event},
		env.teams,
		&fakeTimeslotService{
			slots:    map[uuid.UUID]*timeslotentity.Timeslot{slot.ID: slot},
			children: childrenSlot,
		},
		env.participants,
		env.guardians,
		env.audit,
		env.limiter,
		env.dispatcher,
	)
	return env
}

func individualRequest(env *testEnv) *dto.IndividualRegistrationRequest {
	return &dto.IndividualRegistrationRequest{
		FirstName:  "Anna",
		LastName:   "Schmidt",
		Email:      "anna@example.com",
		Age:        27,
		Gender:     "weiblich",
		TimeslotID: env.slot.ID.String(),
		Captcha:    dto.Captcha{Answer: "7", Expected: 7},
	}
}

func teamRequest(env *testEnv) *dto.TeamRegistrationRequest {
	return &dto.TeamRegistrationRequest{
		TeamName:   "Die Flitzer",
		TimeslotID: env.slot.ID.String(),
		Members: []dto.TeamMember{
			{FirstName: "Max", LastName: "Meier", Email: "max@example.com", Age: 30, Gender: "männlich"},
			{FirstName: "Lisa", LastName: "Krause", Email: "lisa@example.com", Age: 25, Gender: "weiblich"},
		},
		Captcha: dto.Captcha{Answer: "7", Expected: 7},
	}
}

func childrenRequest() *dto.ChildrenRegistrationRequest {
	return &dto.ChildrenRegistrationRequest{
		GuardianName:  "Petra Lang",
		GuardianEmail: "petra@example.com",
		GuardianPhone: "015712345678",
		TeamName:      "Familie Lang",
		Children: []dto.Child{
			{FirstName: "Lena", LastName: "Lang", Age: 6, Gender: "weiblich"},
			{FirstName: "Jonas", LastName: "Lang", Age: 8, Gender: "männlich"},
		},
		Captcha: dto.Captcha{Answer: "7", Expected: 7},
	}
}

// ===================== individual =====================

func TestRegisterIndividualHappyPath(t *testing.T) {
	env := newTestEnv()

	resp, fieldErrs, appErr := env.service.RegisterIndividual(context.Background(), individualRequest(env))
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(fieldErrs) != 0 {
		t.Fatalf("unexpected field errors: %v", fieldErrs)
	}

	if len(env.participants.inserted) != 1 {
		t.Fatalf("inserted %d participants, want 1", len(env.participants.inserted))
	}
	p := env.participants.inserted[0]
	if p.EventID != env.event.ID {
		t.Errorf("participant bound to event %v, want %v", p.EventID, env.event.ID)
	}
	if p.TimeslotID == nil || *p.TimeslotID != env.slot.ID {
		t.Errorf("participant timeslot = %v, want %v", p.TimeslotID, env.slot.ID)
	}
	if p.TeamID != nil {
		t.Errorf("expected no team for solo runner, got %v", p.TeamID)
	}
	if p.ParticipantType != participantentity.TypeAdult {
		t.Errorf("participant type = %v, want adult", p.ParticipantType)
	}
	if p.Email == nil || *p.Email != "anna@example.com" {
		t.Errorf("participant email = %v, want anna@example.com", p.Email)
	}

	if len(env.dispatcher.payloads) != 1 {
		t.Fatalf("dispatched %d confirmations, want 1", len(env.dispatcher.payloads))
	}
	payload := env.dispatcher.payloads[0]
	if payload.Recipient != "anna@example.com" || payload.StartTime != "09:00" {
		t.Errorf("payload = %+v, want recipient anna@example.com at 09:00", payload)
	}

	if resp.StartTime != "09:00" || len(resp.ParticipantIDs) != 1 {
		t.Errorf("response = %+v, want one participant starting at 09:00", resp)
	}
}

func TestRegisterIndividualChildAutoAssigned(t *testing.T) {
	env := newTestEnv()
	req := individualRequest(env)
	req.Age = 8
	req.TimeslotID = ""

	resp, fieldErrs, appErr := env.service.RegisterIndividual(context.Background(), req)
	if appErr != nil || len(fieldErrs) != 0 {
		t.Fatalf("unexpected failure: appErr=%v fieldErrs=%v", appErr, fieldErrs)
	}

	p := env.participants.inserted[0]
	if p.ParticipantType != participantentity.TypeChild {
		t.Errorf("participant type = %v, want child", p.ParticipantType)
	}
	if p.TimeslotID == nil || *p.TimeslotID != env.childrenSlot.ID {
		t.Errorf("child assigned to %v, want children's slot %v", p.TimeslotID, env.childrenSlot.ID)
	}
	if resp.StartTime != "10:00" {
		t.Errorf("response start time = %q, want the children's slot time", resp.StartTime)
	}
}

func TestRegisterIndividualRateLimited(t *testing.T) {
	env := newTestEnv()
	env.limiter.allow = false

	_, _, appErr := env.service.RegisterIndividual(context.Background(), individualRequest(env))
	if appErr == nil || appErr.Code != apperrors.ErrRateLimited {
		t.Fatalf("expected rate limit error, got %v", appErr)
	}
	if len(env.participants.inserted) != 0 {
		t.Errorf("rate-limited submission must write nothing, inserted %d", len(env.participants.inserted))
	}
}

func TestRegisterIndividualWrongCaptcha(t *testing.T) {
	env := newTestEnv()
	req := individualRequest(env)
	req.Captcha.Answer = "8"

	_, _, appErr := env.service.RegisterIndividual(context.Background(), req)
	if appErr == nil || appErr.Code != apperrors.ErrInvalidInput {
		t.Fatalf("expected invalid input error, got %v", appErr)
	}
	if len(env.participants.inserted) != 0 {
		t.Errorf("failed captcha must write nothing, inserted %d", len(env.participants.inserted))
	}
}

func TestRegisterIndividualTimeslotFull(t *testing.T) {
	env := newTestEnv()
	env.participants.failInsertFor["Anna"] = participantrepo.ErrTimeslotFull

	_, _, appErr := env.service.RegisterIndividual(context.Background(), individualRequest(env))
	if appErr == nil || appErr.Code != apperrors.ErrTimeslotFull {
		t.Fatalf("expected timeslot full error, got %v", appErr)
	}
}

func TestRegisterIndividualRejectsChildrenSlotForAdults(t *testing.T) {
	env := newTestEnv()
	env.service = NewRegistrationService(
		&fakeEventService{event: env.event},
		env.teams,
		&fakeTimeslotService{
			slots:    map[uuid.UUID]*timeslotentity.Timeslot{env.childrenSlot.ID: env.childrenSlot},
			children: env.childrenSlot,
		},
		env.participants,
		env.guardians,
		env.audit,
		env.limiter,
		env.dispatcher,
	)
	req := individualRequest(env)
	req.TimeslotID = env.childrenSlot.ID.String()

	_, _, appErr := env.service.RegisterIndividual(context.Background(), req)
	if appErr == nil || appErr.Code != apperrors.ErrInvalidInput {
		t.Fatalf("expected invalid input for adult on children's slot, got %v", appErr)
	}
}

// ===================== team =====================

func TestRegisterTeamClaimsExistingStandaloneRunner(t *testing.T) {
	env := newTestEnv()
	existingID := uuid.New()
	env.participants.existing[identityKey("Max", "Meier")] = &participantentity.Participant{
		ID: existingID, EventID: env.event.ID, ParticipantType: participantentity.TypeAdult,
	}

	resp, fieldErrs, appErr := env.service.RegisterTeam(context.Background(), teamRequest(env))
	if appErr != nil || len(fieldErrs) != 0 {
		t.Fatalf("unexpected failure: appErr=%v fieldErrs=%v", appErr, fieldErrs)
	}

	if len(env.participants.claims) != 1 || env.participants.claims[0] != existingID {
		t.Errorf("claims = %v, want [%v]", env.participants.claims, existingID)
	}
	if len(env.participants.inserted) != 1 {
		t.Fatalf("inserted %d, want 1 (only the new member)", len(env.participants.inserted))
	}
	if env.participants.inserted[0].FirstName != "Lisa" {
		t.Errorf("inserted %q, want the member without an existing row", env.participants.inserted[0].FirstName)
	}
	if len(resp.ParticipantIDs) != 2 {
		t.Errorf("response carries %d participant IDs, want 2", len(resp.ParticipantIDs))
	}
	if resp.TeamCode == "" {
		t.Errorf("response is missing the team code")
	}
}

func TestRegisterTeamBlocksMemberAlreadyOnTeam(t *testing.T) {
	env := newTestEnv()
	otherTeam := uuid.New()
	env.participants.existing[identityKey("Max", "Meier")] = &participantentity.Participant{
		ID: uuid.New(), EventID: env.event.ID, TeamID: &otherTeam,
	}

	_, _, appErr := env.service.RegisterTeam(context.Background(), teamRequest(env))
	if appErr == nil || appErr.Code != apperrors.ErrAlreadyExists {
		t.Fatalf("expected already-exists error, got %v", appErr)
	}

	// The team was the only write; it must be compensated away.
	if len(env.teams.deleted) != 1 {
		t.Errorf("team deletes = %d, want 1", len(env.teams.deleted))
	}
	if len(env.participants.inserted) != 0 || len(env.participants.claims) != 0 {
		t.Errorf("no participant may be written when the batch is blocked")
	}
	if len(env.dispatcher.payloads) != 0 {
		t.Errorf("no confirmations may go out for a failed submission")
	}
}

func TestRegisterTeamCompensatesInReverseOrder(t *testing.T) {
	env := newTestEnv()
	existingID := uuid.New()
	env.participants.existing[identityKey("Max", "Meier")] = &participantentity.Participant{
		ID: existingID, EventID: env.event.ID, ParticipantType: participantentity.TypeAdult,
	}
	req := teamRequest(env)
	req.Members = append(req.Members, dto.TeamMember{
		FirstName: "Timo", LastName: "Brandt", Email: "timo@example.com", Age: 40, Gender: "männlich",
	})
	// Lisa inserts fine, Timo's insert fails after Max was claimed.
	env.participants.failInsertFor["Timo"] = errors.New("connection reset")

	_, _, appErr := env.service.RegisterTeam(context.Background(), req)
	if appErr == nil {
		t.Fatal("expected the submission to fail")
	}

	if len(env.participants.deletes) != 1 {
		t.Errorf("participant deletes = %d, want 1 (Lisa's row)", len(env.participants.deletes))
	}
	if len(env.participants.reverts) != 1 || env.participants.reverts[0] != existingID {
		t.Errorf("reverts = %v, want [%v] (Max back to standalone)", env.participants.reverts, existingID)
	}
	if len(env.teams.deleted) != 1 {
		t.Errorf("team deletes = %d, want 1", len(env.teams.deleted))
	}

	// Newest write is undone first, the team goes last.
	want := []string{"delete_participant", "revert_participant", "delete_team"}
	if len(env.log) != len(want) {
		t.Fatalf("compensation log = %v, want %v", env.log, want)
	}
	for i := range want {
		if env.log[i] != want[i] {
			t.Errorf("compensation %d = %q, want %q", i, env.log[i], want[i])
		}
	}

	if len(env.dispatcher.payloads) != 0 {
		t.Errorf("no confirmations may go out after a rollback")
	}
}

func TestRegisterTeamSharedEmailConfirmations(t *testing.T) {
	env := newTestEnv()
	req := teamRequest(env)
	req.SharedEmail = true
	req.TeamEmail = "team@example.com"
	req.Members[0].Email = ""
	req.Members[1].Email = ""

	_, fieldErrs, appErr := env.service.RegisterTeam(context.Background(), req)
	if appErr != nil || len(fieldErrs) != 0 {
		t.Fatalf("unexpected failure: appErr=%v fieldErrs=%v", appErr, fieldErrs)
	}

	for _, p := range env.participants.inserted {
		if p.Email == nil || *p.Email != "team@example.com" {
			t.Errorf("member %s stored email %v, want the shared team email", p.FirstName, p.Email)
		}
	}

	// Two member payloads falling back to the team address plus the team copy.
	if len(env.dispatcher.payloads) != 3 {
		t.Fatalf("dispatched %d confirmations, want 3", len(env.dispatcher.payloads))
	}
	for _, payload := range env.dispatcher.payloads {
		if payload.Recipient != "team@example.com" {
			t.Errorf("payload recipient = %q, want team@example.com", payload.Recipient)
		}
	}
}

// ===================== children =====================

func TestRegisterChildrenHappyPath(t *testing.T) {
	env := newTestEnv()

	resp, fieldErrs, appErr := env.service.RegisterChildren(context.Background(), childrenRequest())
	if appErr != nil || len(fieldErrs) != 0 {
		t.Fatalf("unexpected failure: appErr=%v fieldErrs=%v", appErr, fieldErrs)
	}

	if env.guardians.created == nil {
		t.Fatal("expected a guardian row")
	}
	if env.teams.created == nil {
		t.Fatal("expected a team for multiple children")
	}
	if len(env.participants.inserted) != 2 {
		t.Fatalf("inserted %d participants, want 2", len(env.participants.inserted))
	}
	for _, p := range env.participants.inserted {
		if p.ParticipantType != participantentity.TypeChild {
			t.Errorf("%s stored as %v, want child", p.FirstName, p.ParticipantType)
		}
		if p.GuardianID == nil || *p.GuardianID != env.guardians.created.ID {
			t.Errorf("%s is missing the guardian reference", p.FirstName)
		}
		if p.TimeslotID == nil || *p.TimeslotID != env.childrenSlot.ID {
			t.Errorf("%s assigned to %v, want the children's slot", p.FirstName, p.TimeslotID)
		}
		if p.Email != nil {
			t.Errorf("children must not store an email, %s has %q", p.FirstName, *p.Email)
		}
	}

	if len(env.dispatcher.payloads) != 1 {
		t.Fatalf("dispatched %d confirmations, want 1 to the guardian", len(env.dispatcher.payloads))
	}
	if env.dispatcher.payloads[0].Recipient != "petra@example.com" {
		t.Errorf("confirmation went to %q, want the guardian", env.dispatcher.payloads[0].Recipient)
	}
	if resp.TeamName != "Familie Lang" {
		t.Errorf("response team name = %q, want Familie Lang", resp.TeamName)
	}
}

func TestRegisterChildrenRollsBackGuardianAndTeam(t *testing.T) {
	env := newTestEnv()
	env.participants.failInsertFor["Jonas"] = errors.New("connection reset")

	_, _, appErr := env.service.RegisterChildren(context.Background(), childrenRequest())
	if appErr == nil {
		t.Fatal("expected the submission to fail")
	}

	want := []string{"delete_participant", "delete_guardian", "delete_team"}
	if len(env.log) != len(want) {
		t.Fatalf("compensation log = %v, want %v", env.log, want)
	}
	for i := range want {
		if env.log[i] != want[i] {
			t.Errorf("compensation %d = %q, want %q", i, env.log[i], want[i])
		}
	}
}

func TestRegisterChildrenInvalidPhone(t *testing.T) {
	env := newTestEnv()
	req := childrenRequest()
	req.GuardianPhone = "1234567890"

	_, _, appErr := env.service.RegisterChildren(context.Background(), req)
	if appErr == nil || appErr.Code != apperrors.ErrValidation {
		t.Fatalf("expected validation error for non-mobile number, got %v", appErr)
	}
	if env.guardians.created != nil {
		t.Errorf("nothing may be written when semantic validation fails")
	}
}
