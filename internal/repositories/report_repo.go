package repositories

import (
	"context"

	"boardsuite/internal/models"
)

type ReportRepository interface {
	MonthlySales(ctx context.Context, year, month int) (float64, error)
	TotalPending(ctx context.Context) (float64, error)
	PaymentsForMonth(ctx context.Context, year, month int) ([]models.ReportPayment, error)
	PendingBills(ctx context.Context) ([]models.ReportPendingBill, error)
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

type reportRepo struct {
	db Database
}

func NewReportRepo(db Database) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) MonthlySales(ctx context.Context, year, month int) (float64, error) {
	var total float64
	query := `
		SELECT COALESCE(SUM(amount_paid), 0)
		FROM payments
		WHERE EXTRACT(YEAR FROM payment_date) = $1 AND EXTRACT(MONTH FROM payment_date) = $2
	`
	err := r.db.QueryRow(ctx, query, year, month).Scan(&total)
	return total, err
}

func (r *reportRepo) TotalPending(ctx context.Context) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(amount_due), 0) FROM bills WHERE status != 'Paid'`
	err := r.db.QueryRow(ctx, query).Scan(&total)
	return total, err
}

func (r *reportRepo) PaymentsForMonth(ctx context.Context, year, month int) ([]models.ReportPayment, error) {
	query := `
		SELECT p.id, p.amount_paid, p.payment_date, t.full_name AS tenant_name
		FROM payments p
		JOIN tenants t ON p.tenant_id = t.id
		WHERE EXTRACT(YEAR FROM p.payment_date) = $1 AND EXTRACT(MONTH FROM p.payment_date) = $2
		ORDER BY p.payment_date DESC
	`
	rows, err := r.db.Query(ctx, query, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.ReportPayment{}
	for rows.Next() {
		var p models.ReportPayment
		if err := rows.Scan(&p.ID, &p.AmountPaid, &p.PaymentDate, &p.TenantName); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *reportRepo) PendingBills(ctx context.Context) ([]models.ReportPendingBill, error) {
	query := `
		SELECT b.id, b.amount_due, b.due_date, t.full_name AS tenant_name, b.status
		FROM bills b
		JOIN tenants t ON b.tenant_id = t.id
		WHERE b.status != 'Paid'
		ORDER BY b.due_date ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := []models.ReportPendingBill{}
	for rows.Next() {
		var b models.ReportPendingBill
		if err := rows.Scan(&b.ID, &b.AmountDue, &b.DueDate, &b.TenantName, &b.Status); err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func (r *reportRepo) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tenants`).Scan(&stats.TotalTenants); err != nil {
		return nil, err
	}

	roomsQuery := `
		SELECT COUNT(*) FILTER (WHERE status = 'Occupied'), COUNT(*)
		FROM rooms
	`
	if err := r.db.QueryRow(ctx, roomsQuery).Scan(&stats.OccupiedRooms, &stats.TotalRooms); err != nil {
		return nil, err
	}

	pendingQuery := `
		SELECT COUNT(*), COALESCE(SUM(amount_due), 0)
		FROM bills
		WHERE status IN ('Pending', 'Partially Paid', 'Overdue')
	`
	if err := r.db.QueryRow(ctx, pendingQuery).Scan(&stats.PendingCount, &stats.PendingAmount); err != nil {
		return nil, err
	}

	revenueQuery := `
		SELECT COALESCE(SUM(amount_paid), 0)
		FROM payments
		WHERE EXTRACT(YEAR FROM payment_date) = EXTRACT(YEAR FROM CURRENT_DATE)
		  AND EXTRACT(MONTH FROM payment_date) = EXTRACT(MONTH FROM CURRENT_DATE)
	`
	if err := r.db.QueryRow(ctx, revenueQuery).Scan(&stats.MonthlyRevenue); err != nil {
		return nil, err
	}

	return stats, nil
}
