package dto

import (
	"time"

	"spendenlauf-api/modules/event/entity"
)

// CreateEventRequest for creating a new yearly event
type CreateEventRequest struct {
	Name string `json:"name" validate:"required,min=2"`
	Year int    `json:"year" validate:"required,min=2000,max=2100"`
}

// EventResponse for event details
type EventResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Year             int       `json:"year"`
	Slug             string    `json:"slug"`
	RegistrationOpen bool      `json:"registration_open"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToEventResponse maps entity to DTO
func ToEventResponse(e *entity.Event) *EventResponse {
	return &EventResponse{
		ID:               e.ID.String(),
		Name:             e.Name,
		Year:             e.Year,
		Slug:             e.Slug,
		RegistrationOpen: e.RegistrationOpen,
		CreatedAt:        e.CreatedAt,
	}
}
