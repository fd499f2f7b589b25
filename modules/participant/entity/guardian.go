package entity

import (
	"time"

	"github.com/google/uuid"
)

// Guardian is the contact person of one children's-run submission. One
// guardian owns one or more child participants; the email is unique.
type Guardian struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Address   *string   `db:"address" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
