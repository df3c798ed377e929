package models

import (
	"time"

	"github.com/google/uuid"
)

type Tenant struct {
	ID                     uuid.UUID  `json:"id" db:"id"`
	FullName               string     `json:"full_name" db:"full_name"`
	ContactNumber          *string    `json:"contact_number" db:"contact_number"`
	Email                  *string    `json:"email" db:"email"`
	Address                *string    `json:"address" db:"address"`
	EmergencyContactName   *string    `json:"emergency_contact_name" db:"emergency_contact_name"`
	EmergencyContactNumber *string    `json:"emergency_contact_number" db:"emergency_contact_number"`
	RoomID                 *uuid.UUID `json:"room_id" db:"room_id"`
	LastPaymentDate        *time.Time `json:"last_payment_date" db:"last_payment_date"`
	RegistrationDate       time.Time  `json:"registration_date" db:"registration_date"`
}

// TenantWithRoom is a tenant row joined with the number of their current
// room for display tables.
type TenantWithRoom struct {
	Tenant
	RoomNumber *string `json:"room_number"`
}

// AvailableTenant is the reduced shape for tenants with no room, used by
// assignment dropdowns.
type AvailableTenant struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
}
