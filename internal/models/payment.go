package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment method values
const (
	MethodCash         = "Cash"
	MethodBankTransfer = "Bank Transfer"
	MethodGCash        = "GCash"
	MethodCard         = "Card"
	MethodOther        = "Other"
)

// Payment is immutable once recorded; there is no update or delete path.
type Payment struct {
	ID            uuid.UUID `json:"id" db:"id"`
	BillID        uuid.UUID `json:"bill_id" db:"bill_id"`
	TenantID      uuid.UUID `json:"tenant_id" db:"tenant_id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	AmountPaid    float64   `json:"amount_paid" db:"amount_paid"`
	PaymentDate   time.Time `json:"payment_date" db:"payment_date"`
	PaymentMethod string    `json:"payment_method" db:"payment_method"`
	Notes         *string   `json:"notes" db:"notes"`
	ReceiptObject *string   `json:"receipt_object" db:"receipt_object"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodGCash, MethodCard, MethodOther:
		return true
	}
	return false
}
