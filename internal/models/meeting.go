package models

import (
	"time"

	"github.com/google/uuid"
)

// Meeting represents a scheduled meeting owned by its organizer
type Meeting struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	Date         time.Time `json:"date" db:"date"`
	StartTime    string    `json:"start_time" db:"start_time"` // HH:MM
	EndTime      string    `json:"end_time" db:"end_time"`     // HH:MM
	Participants []string  `json:"participants" db:"participants"`
	OrganizerID  uuid.UUID `json:"organizer_id" db:"organizer_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
