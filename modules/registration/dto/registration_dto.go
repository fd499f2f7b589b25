package dto

// Captcha is the arithmetic challenge the forms render. The expected value
// travels with the answer; like the rate limiter this is a speed bump against
// casual scripting, not a security boundary.
type Captcha struct {
	Answer   string `json:"answer"`
	Expected int    `json:"expected"`
}

// IndividualRegistrationRequest is the single-runner signup form.
type IndividualRegistrationRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`

	// Joining an existing team is optional for individual runners.
	JoinTeam       bool   `json:"join_team"`
	TeamIdentifier string `json:"team_identifier"`

	// Required for runners aged 10 and up; children are auto-assigned.
	TimeslotID string `json:"timeslot_id"`

	Captcha Captcha `json:"captcha"`
}

// TeamMember is one runner inside a team signup.
type TeamMember struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
}

// TeamRegistrationRequest is the team signup form. The team tab always
// creates a new team; joining an existing one happens via the individual form.
type TeamRegistrationRequest struct {
	TeamName    string       `json:"team_name"`
	SharedEmail bool         `json:"shared_email"`
	TeamEmail   string       `json:"team_email"`
	TimeslotID  string       `json:"timeslot_id"`
	Members     []TeamMember `json:"members"`

	Captcha Captcha `json:"captcha"`
}

// Child is one child inside a children's-run signup.
type Child struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
}

// ChildrenRegistrationRequest is the children's-run form. The guardian is the
// contact for all submitted children.
type ChildrenRegistrationRequest struct {
	GuardianName    string  `json:"guardian_name"`
	GuardianEmail   string  `json:"guardian_email"`
	GuardianPhone   string  `json:"guardian_phone"`
	GuardianAddress string  `json:"guardian_address"`
	Children        []Child `json:"children"`

	// With more than one child either a new team name or an explicit join is
	// required.
	TeamName       string `json:"team_name"`
	JoinTeam       bool   `json:"join_team"`
	TeamIdentifier string `json:"team_identifier"`

	Captcha Captcha `json:"captcha"`
}

// RegistrationResponse reports a successful submission.
type RegistrationResponse struct {
	Kind           string   `json:"kind"`
	ParticipantIDs []string `json:"participant_ids"`
	TeamName       string   `json:"team_name,omitempty"`
	TeamCode       string   `json:"team_code,omitempty"`
	StartTime      string   `json:"start_time"`
}
