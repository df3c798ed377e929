package models

import (
	"time"

	"github.com/google/uuid"
)

// Bill status values. BillOverdue exists in the schema but no write path
// assigns it; bills only move Pending -> Partially Paid -> Paid through
// payment reconciliation.
const (
	BillPending       = "Pending"
	BillPartiallyPaid = "Partially Paid"
	BillPaid          = "Paid"
	BillOverdue       = "Overdue"
)

type Bill struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	RoomID    uuid.UUID `json:"room_id" db:"room_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	AmountDue float64   `json:"amount_due" db:"amount_due"`
	BillDate  time.Time `json:"bill_date" db:"bill_date"`
	DueDate   time.Time `json:"due_date" db:"due_date"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// BillWithTenant is a bill row joined with tenant and room display fields.
type BillWithTenant struct {
	ID         uuid.UUID `json:"id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	AmountDue  float64   `json:"amount_due"`
	BillDate   time.Time `json:"bill_date"`
	DueDate    time.Time `json:"due_date"`
	Status     string    `json:"status"`
	TenantName string    `json:"tenant_name"`
	RoomNumber string    `json:"room_number"`
}

// OccupiedTenancy is one currently-occupied tenant/room pair with the
// room's rate, the unit the billing engine iterates over.
type OccupiedTenancy struct {
	TenantID     uuid.UUID `json:"tenant_id"`
	RoomID       uuid.UUID `json:"room_id"`
	RatePerMonth float64   `json:"rate_per_month"`
}
