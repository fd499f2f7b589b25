package entity

import (
	"time"

	"github.com/google/uuid"
)

// TimeslotType distinguishes the regular start waves from the children's run.
type TimeslotType string

const (
	TimeslotTypeNormal   TimeslotType = "normal"
	TimeslotTypeChildren TimeslotType = "children"
)

// Timeslot is one start wave of an event. Capacity is a fixed limit; the fill
// level is never stored, it is counted from participants at read time.
type Timeslot struct {
	ID        uuid.UUID    `db:"id" json:"id"`
	EventID   uuid.UUID    `db:"event_id" json:"event_id"`
	Name      string       `db:"name" json:"name"`
	TimeOfDay string       `db:"time_of_day" json:"time_of_day"`
	Type      TimeslotType `db:"slot_type" json:"type"`
	Capacity  int          `db:"capacity" json:"capacity"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
}

// TimeslotWithFill is a timeslot joined with its current participant count.
type TimeslotWithFill struct {
	Timeslot
	Registered int `db:"registered" json:"registered"`
}
