package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event is one yearly charity run. At most one event has registration open at
// any time; every registration workflow binds to that event for its whole run.
type Event struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Year             int       `db:"year" json:"year"`
	Slug             string    `db:"slug" json:"slug"`
	RegistrationOpen bool      `db:"registration_open" json:"registration_open"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}
