package models

import (
	"time"

	"github.com/google/uuid"
)

// Room status values
const (
	RoomAvailable        = "Available"
	RoomOccupied         = "Occupied"
	RoomUnderMaintenance = "Under Maintenance"
)

type Room struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	RoomNumber   string     `json:"room_number" db:"room_number"`
	Description  *string    `json:"description" db:"description"`
	Capacity     int        `json:"capacity" db:"capacity"`
	Status       string     `json:"status" db:"status"`
	RatePerMonth float64    `json:"rate_per_month" db:"rate_per_month"`
	UserID       *uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// RoomWithOccupant is a room row joined with the full name of the tenant
// currently holding it, if any.
type RoomWithOccupant struct {
	Room
	OccupantName *string `json:"occupant_name"`
}

// AvailableRoom is the reduced shape used by assignment dropdowns.
type AvailableRoom struct {
	ID         uuid.UUID `json:"id"`
	RoomNumber string    `json:"room_number"`
}

// ValidRoomStatus reports whether s is one of the three room states.
func ValidRoomStatus(s string) bool {
	return s == RoomAvailable || s == RoomOccupied || s == RoomUnderMaintenance
}
