package repositories

import (
	"context"
	"errors"
	"time"

	"boardsuite/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BillRepository interface {
	Create(ctx context.Context, bill *models.Bill) error
	ListWithTenant(ctx context.Context) ([]*models.BillWithTenant, error)
	OccupiedTenancies(ctx context.Context) ([]*models.OccupiedTenancy, error)
	LastBillDate(ctx context.Context, tenantID uuid.UUID) (*time.Time, error)
}

type billRepo struct {
	db Database
}

func NewBillRepo(db Database) BillRepository {
	return &billRepo{db: db}
}

func (r *billRepo) Create(ctx context.Context, bill *models.Bill) error {
	query := `
		INSERT INTO bills (id, tenant_id, room_id, user_id, amount_due, bill_date, due_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, bill.ID, bill.TenantID, bill.RoomID, bill.UserID, bill.AmountDue, bill.BillDate, bill.DueDate, bill.Status)
	return err
}

func (r *billRepo) ListWithTenant(ctx context.Context) ([]*models.BillWithTenant, error) {
	query := `
		SELECT b.id, b.tenant_id, b.amount_due, b.bill_date, b.due_date, b.status,
		       t.full_name AS tenant_name, r.room_number
		FROM bills b
		JOIN tenants t ON b.tenant_id = t.id
		JOIN rooms r ON b.room_id = r.id
		ORDER BY b.bill_date DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []*models.BillWithTenant
	for rows.Next() {
		bill := &models.BillWithTenant{}
		if err := rows.Scan(&bill.ID, &bill.TenantID, &bill.AmountDue, &bill.BillDate, &bill.DueDate, &bill.Status, &bill.TenantName, &bill.RoomNumber); err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, rows.Err()
}

// OccupiedTenancies returns every tenant currently assigned to a room
// together with the room's monthly rate, the set the billing engine
// iterates over.
func (r *billRepo) OccupiedTenancies(ctx context.Context) ([]*models.OccupiedTenancy, error) {
	query := `
		SELECT t.id AS tenant_id, r.id AS room_id, r.rate_per_month
		FROM tenants t
		JOIN rooms r ON t.room_id = r.id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenancies []*models.OccupiedTenancy
	for rows.Next() {
		tenancy := &models.OccupiedTenancy{}
		if err := rows.Scan(&tenancy.TenantID, &tenancy.RoomID, &tenancy.RatePerMonth); err != nil {
			return nil, err
		}
		tenancies = append(tenancies, tenancy)
	}
	return tenancies, rows.Err()
}

// LastBillDate returns the tenant's most recent bill date, or nil when the
// tenant has never been billed.
func (r *billRepo) LastBillDate(ctx context.Context, tenantID uuid.UUID) (*time.Time, error) {
	var last *time.Time
	query := `SELECT MAX(bill_date) FROM bills WHERE tenant_id = $1`
	err := r.db.QueryRow(ctx, query, tenantID).Scan(&last)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return last, nil
}
