package service

import (
	"testing"

	"spendenlauf-api/modules/registration/dto"
)

func validIndividualRequest() *dto.IndividualRegistrationRequest {
	return &dto.IndividualRegistrationRequest{
		FirstName:  "Anna",
		LastName:   "Schmidt",
		Email:      "anna@example.com",
		Age:        27,
		Gender:     "weiblich",
		TimeslotID: "8e7cbcde-7a37-4f4a-9c5e-2c4f1f2a6b01",
	}
}

func TestValidateIndividualAcceptsValidForm(t *testing.T) {
	errs := ValidateIndividual(validIndividualRequest())
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateIndividualTimeslotRules(t *testing.T) {
	tests := []struct {
		name      string
		age       int
		timeslot  string
		wantField bool
	}{
		{"adult without timeslot", 30, "", true},
		{"adult with timeslot", 30, "some-id", false},
		{"child without timeslot", 8, "", false},
		{"child with timeslot rejected", 8, "some-id", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validIndividualRequest()
			req.Age = tt.age
			req.TimeslotID = tt.timeslot
			errs := ValidateIndividual(req)
			_, got := errs["timeslot_id"]
			if got != tt.wantField {
				t.Errorf("timeslot_id error = %v, want %v (errs: %v)", got, tt.wantField, errs)
			}
		})
	}
}

func TestValidateIndividualJoinTeamRequiresIdentifier(t *testing.T) {
	req := validIndividualRequest()
	req.JoinTeam = true
	req.TeamIdentifier = "  "

	errs := ValidateIndividual(req)
	if _, ok := errs["team_identifier"]; !ok {
		t.Errorf("expected team_identifier error, got %v", errs)
	}
}

func TestValidateTeamSharedEmailSkipsMemberEmails(t *testing.T) {
	req := &dto.TeamRegistrationRequest{
		TeamName:    "Die Flitzer",
		SharedEmail: true,
		TeamEmail:   "team@example.com",
		TimeslotID:  "some-id",
		Members: []dto.TeamMember{
			{FirstName: "Max", LastName: "Meier", Age: 30, Gender: "männlich"},
		},
	}

	errs := ValidateTeam(req)
	if len(errs) != 0 {
		t.Errorf("expected no errors with shared email, got %v", errs)
	}

	req.SharedEmail = false
	req.TeamEmail = ""
	errs = ValidateTeam(req)
	if _, ok := errs["members[0].email"]; !ok {
		t.Errorf("expected members[0].email error without shared email, got %v", errs)
	}
}

func TestValidateTeamMemberAgeBounds(t *testing.T) {
	req := &dto.TeamRegistrationRequest{
		TeamName:   "Die Flitzer",
		TimeslotID: "some-id",
		Members: []dto.TeamMember{
			{FirstName: "Max", LastName: "Meier", Email: "max@example.com", Age: 15, Gender: "männlich"},
		},
	}

	errs := ValidateTeam(req)
	if _, ok := errs["members[0].age"]; !ok {
		t.Errorf("expected age error for 15-year-old team member, got %v", errs)
	}
}

func TestValidateChildrenTeamRequirement(t *testing.T) {
	base := func() *dto.ChildrenRegistrationRequest {
		return &dto.ChildrenRegistrationRequest{
			GuardianName:  "Petra Lang",
			GuardianEmail: "petra@example.com",
			GuardianPhone: "015712345678",
			Children: []dto.Child{
				{FirstName: "Lena", LastName: "Lang", Age: 6, Gender: "weiblich"},
				{FirstName: "Jonas", LastName: "Lang", Age: 8, Gender: "männlich"},
			},
		}
	}

	req := base()
	errs := ValidateChildren(req)
	if _, ok := errs["team_name"]; !ok {
		t.Errorf("expected team_name error for multiple children without team, got %v", errs)
	}

	req = base()
	req.TeamName = "Familie Lang"
	if errs := ValidateChildren(req); len(errs) != 0 {
		t.Errorf("expected no errors with team name, got %v", errs)
	}

	req = base()
	req.JoinTeam = true
	req.TeamIdentifier = "AB23CD"
	if errs := ValidateChildren(req); len(errs) != 0 {
		t.Errorf("expected no errors when joining a team, got %v", errs)
	}

	req = base()
	req.Children = req.Children[:1]
	if errs := ValidateChildren(req); len(errs) != 0 {
		t.Errorf("expected no errors for a single child without team, got %v", errs)
	}
}

func TestValidateChildrenAgeBounds(t *testing.T) {
	req := &dto.ChildrenRegistrationRequest{
		GuardianName:  "Petra Lang",
		GuardianEmail: "petra@example.com",
		GuardianPhone: "015712345678",
		Children: []dto.Child{
			{FirstName: "Lena", LastName: "Lang", Age: 10, Gender: "weiblich"},
		},
	}

	errs := ValidateChildren(req)
	if _, ok := errs["children[0].age"]; !ok {
		t.Errorf("expected age error for 10-year-old on children's form, got %v", errs)
	}
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Anna", true},
		{"Anna-Lena", true},
		{"Jürgen Müller", true},
		{"Zoë", true},
		{"<script>", false},
		{"Anna;DROP", false},
		{"O'Brien", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidName(tt.name); got != tt.want {
			t.Errorf("ValidName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestValidGermanMobile(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"015712345678", true},
		{"+49 157 12345678", true},
		{"0049 157 1234-5678", true},
		{"0157/1234567", true},
		{"030123456", false},  // landline prefix
		{"12345", false},
		{"+1 555 0100", false},
	}

	for _, tt := range tests {
		if got := ValidGermanMobile(tt.phone); got != tt.want {
			t.Errorf("ValidGermanMobile(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}

func TestValidateCaptcha(t *testing.T) {
	tests := []struct {
		answer   string
		expected int
		want     bool
	}{
		{"7", 7, true},
		{" 7 ", 7, true},
		{"7.0", 7, false},
		{"sieben", 7, false},
		{"", 7, false},
		{"8", 7, false},
	}

	for _, tt := range tests {
		if got := ValidateCaptcha(tt.answer, tt.expected); got != tt.want {
			t.Errorf("ValidateCaptcha(%q, %d) = %v, want %v", tt.answer, tt.expected, got, tt.want)
		}
	}
}
