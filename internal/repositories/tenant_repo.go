package repositories

import (
	"context"
	"time"

	"boardsuite/internal/models"

	"github.com/google/uuid"
)

type TenantRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]*models.TenantWithRoom, error)
	ListAvailable(ctx context.Context) ([]*models.AvailableTenant, error)
	SetLastPaymentDate(ctx context.Context, id uuid.UUID, date time.Time) (bool, error)
}

type tenantRepo struct {
	db Database
}

func NewTenantRepo(db Database) TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	query := `
		SELECT id, full_name, contact_number, email, address, emergency_contact_name, emergency_contact_number, room_id, last_payment_date, registration_date
		FROM tenants
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&tenant.ID, &tenant.FullName, &tenant.ContactNumber, &tenant.Email, &tenant.Address, &tenant.EmergencyContactName, &tenant.EmergencyContactNumber, &tenant.RoomID, &tenant.LastPaymentDate, &tenant.RegistrationDate)
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

// Update rewrites the tenant's personal details only; room assignment moves
// exclusively through the occupancy transitions.
func (r *tenantRepo) Update(ctx context.Context, tenant *models.Tenant) error {
	query := `
		UPDATE tenants
		SET full_name = $1, contact_number = $2, email = $3, address = $4, emergency_contact_name = $5, emergency_contact_number = $6
		WHERE id = $7
	`
	_, err := r.db.Exec(ctx, query, tenant.FullName, tenant.ContactNumber, tenant.Email, tenant.Address, tenant.EmergencyContactName, tenant.EmergencyContactNumber, tenant.ID)
	return err
}

func (r *tenantRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *tenantRepo) List(ctx context.Context) ([]*models.TenantWithRoom, error) {
	query := `
		SELECT t.id, t.full_name, t.contact_number, t.email, t.address, t.emergency_contact_name, t.emergency_contact_number, t.room_id, t.last_payment_date, t.registration_date,
		       r.room_number
		FROM tenants t
		LEFT JOIN rooms r ON t.room_id = r.id
		ORDER BY t.full_name ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*models.TenantWithRoom
	for rows.Next() {
		tenant := &models.TenantWithRoom{}
		if err := rows.Scan(&tenant.ID, &tenant.FullName, &tenant.ContactNumber, &tenant.Email, &tenant.Address, &tenant.EmergencyContactName, &tenant.EmergencyContactNumber, &tenant.RoomID, &tenant.LastPaymentDate, &tenant.RegistrationDate, &tenant.RoomNumber); err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, rows.Err()
}

func (r *tenantRepo) ListAvailable(ctx context.Context) ([]*models.AvailableTenant, error) {
	query := `
		SELECT id, full_name
		FROM tenants
		WHERE room_id IS NULL
		ORDER BY full_name ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*models.AvailableTenant
	for rows.Next() {
		tenant := &models.AvailableTenant{}
		if err := rows.Scan(&tenant.ID, &tenant.FullName); err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, rows.Err()
}

func (r *tenantRepo) SetLastPaymentDate(ctx context.Context, id uuid.UUID, date time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE tenants SET last_payment_date = $1 WHERE id = $2`, date, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
