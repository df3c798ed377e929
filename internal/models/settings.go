package models

import (
	"time"

	"github.com/google/uuid"
)

// Late fee policy types
const (
	LateFeeFixed      = "Fixed"
	LateFeePercentage = "Percentage"
)

// Settings is the single business configuration row (id is always 1).
type Settings struct {
	ID                int        `json:"id" db:"id"`
	UserID            *uuid.UUID `json:"user_id" db:"user_id"`
	BoardingHouseName string     `json:"boarding_house_name" db:"boarding_house_name"`
	BusinessAddress   *string    `json:"business_address" db:"business_address"`
	ContactPhone      *string    `json:"contact_phone" db:"contact_phone"`
	ContactEmail      *string    `json:"contact_email" db:"contact_email"`
	CurrencySymbol    string     `json:"currency_symbol" db:"currency_symbol"`
	DefaultDuePeriod  int        `json:"default_due_period" db:"default_due_period"`
	LateFeesEnabled   bool       `json:"late_fees_enabled" db:"late_fees_enabled"`
	LateFeeType       string     `json:"late_fee_type" db:"late_fee_type"`
	LateFeeAmount     float64    `json:"late_fee_amount" db:"late_fee_amount"`
	PaymentMethods    []string   `json:"payment_methods" db:"payment_methods"`
	GeminiAPIKey      *string    `json:"gemini_api_key" db:"gemini_api_key"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}
