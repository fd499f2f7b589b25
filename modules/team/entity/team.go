package entity

import (
	"time"

	"github.com/google/uuid"
)

// Team is a named group of runners within one event. Code is the short
// human-readable identifier assigned at creation; runners quote it to join.
// Name uniqueness (up to case and whitespace) is enforced in the service
// layer, not by the database.
type Team struct {
	ID          uuid.UUID `db:"id" json:"id"`
	EventID     uuid.UUID `db:"event_id" json:"event_id"`
	Code        string    `db:"code" json:"code"`
	Name        string    `db:"name" json:"name"`
	SharedEmail bool      `db:"shared_email" json:"shared_email"`
	TeamEmail   *string   `db:"team_email" json:"team_email,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
