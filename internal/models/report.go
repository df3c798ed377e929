package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportPayment is one payment line in a monthly report.
type ReportPayment struct {
	ID          uuid.UUID `json:"id"`
	AmountPaid  float64   `json:"amount_paid"`
	PaymentDate time.Time `json:"payment_date"`
	TenantName  string    `json:"tenant_name"`
}

// ReportPendingBill is one outstanding bill line in a monthly report.
type ReportPendingBill struct {
	ID         uuid.UUID `json:"id"`
	AmountDue  float64   `json:"amount_due"`
	DueDate    time.Time `json:"due_date"`
	TenantName string    `json:"tenant_name"`
	Status     string    `json:"status"`
}

// MonthlyReport is the read-only rollup for one calendar month.
type MonthlyReport struct {
	MonthlySales float64             `json:"monthlySales"`
	TotalPending float64             `json:"totalPending"`
	Payments     []ReportPayment     `json:"payments"`
	PendingBills []ReportPendingBill `json:"pendingBills"`
}

// DashboardStats is the landing-page aggregate snapshot.
type DashboardStats struct {
	TotalTenants   int     `json:"totalTenants"`
	OccupiedRooms  int     `json:"occupiedRooms"`
	TotalRooms     int     `json:"totalRooms"`
	PendingCount   int     `json:"pendingCount"`
	PendingAmount  float64 `json:"pendingAmount"`
	MonthlyRevenue float64 `json:"monthlyRevenue"`
}
