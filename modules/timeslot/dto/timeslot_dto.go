package dto

import (
	"spendenlauf-api/modules/timeslot/entity"
)

// CreateTimeslotRequest for adding a start wave to an event
type CreateTimeslotRequest struct {
	EventID   string `json:"event_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,min=2"`
	TimeOfDay string `json:"time_of_day" validate:"required"`
	Capacity  int    `json:"capacity" validate:"required,min=1"`
}

// TimeslotResponse for the signup form's timeslot picker
type TimeslotResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TimeOfDay  string `json:"time_of_day"`
	Type       string `json:"type"`
	Capacity   int    `json:"capacity"`
	Registered int    `json:"registered"`
	Available  int    `json:"available"`
}

// ToTimeslotResponse maps entity to DTO
func ToTimeslotResponse(t *entity.TimeslotWithFill) *TimeslotResponse {
	available := t.Capacity - t.Registered
	if available < 0 {
		available = 0
	}
	return &TimeslotResponse{
		ID:         t.ID.String(),
		Name:       t.Name,
		TimeOfDay:  t.TimeOfDay,
		Type:       string(t.Type),
		Capacity:   t.Capacity,
		Registered: t.Registered,
		Available:  available,
	}
}
