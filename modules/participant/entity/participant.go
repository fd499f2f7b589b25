package entity

import (
	"time"

	"github.com/google/uuid"
)

// Gender is the storage representation. The forms submit German display
// values which are translated at the boundary (see ParseGender).
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ParseGender translates a display value (männlich/weiblich/divers) or an
// already-canonical storage value into a Gender.
func ParseGender(value string) (Gender, bool) {
	switch value {
	case "männlich", string(GenderMale):
		return GenderMale, true
	case "weiblich", string(GenderFemale):
		return GenderFemale, true
	case "divers", string(GenderOther):
		return GenderOther, true
	default:
		return "", false
	}
}

// ParticipantType is derived from age: below ChildAgeThreshold a registrant
// runs in the children's run.
type ParticipantType string

const (
	TypeAdult ParticipantType = "adult"
	TypeChild ParticipantType = "child"
)

// Participant is one registered runner. A participant may exist standalone
// (TeamID nil) and later be claimed into a team by an update instead of a
// second insert; identity for that match is (first, last, email, event, type).
type Participant struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	EventID         uuid.UUID       `db:"event_id" json:"event_id"`
	TeamID          *uuid.UUID      `db:"team_id" json:"team_id,omitempty"`
	GuardianID      *uuid.UUID      `db:"guardian_id" json:"guardian_id,omitempty"`
	TimeslotID      *uuid.UUID      `db:"timeslot_id" json:"timeslot_id,omitempty"`
	FirstName       string          `db:"first_name" json:"first_name"`
	LastName        string          `db:"last_name" json:"last_name"`
	Email           *string         `db:"email" json:"email,omitempty"`
	Age             int             `db:"age" json:"age"`
	Gender          Gender          `db:"gender" json:"gender"`
	ParticipantType ParticipantType `db:"participant_type" json:"participant_type"`
	RunnerNumber    *int            `db:"runner_number" json:"runner_number,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}
