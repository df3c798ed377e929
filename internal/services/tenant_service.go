package services

import (
	"context"
	"errors"

	"boardsuite/internal/common"
	"boardsuite/internal/models"
	"boardsuite/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UpdateTenantRequest struct {
	FullName               string
	ContactNumber          *string
	Email                  *string
	Address                *string
	EmergencyContactName   *string
	EmergencyContactNumber *string
}

// TenantService handles the tenant's personal record. Room moves are the
// occupancy service's job.
type TenantService interface {
	UpdateTenant(ctx context.Context, id uuid.UUID, req *UpdateTenantRequest) (*models.Tenant, error)
	DeleteTenant(ctx context.Context, id uuid.UUID) error
	ListTenants(ctx context.Context) ([]*models.TenantWithRoom, error)
	ListAvailableTenants(ctx context.Context) ([]*models.AvailableTenant, error)
}

type tenantService struct {
	db         repositories.Database
	tenantRepo repositories.TenantRepository
}

func NewTenantService(db repositories.Database, tenantRepo repositories.TenantRepository) TenantService {
	return &tenantService{db: db, tenantRepo: tenantRepo}
}

func (s *tenantService) UpdateTenant(ctx context.Context, id uuid.UUID, req *UpdateTenantRequest) (*models.Tenant, error) {
	if req.FullName == "" {
		return nil, &common.ValidationError{Message: "Full name is required."}
	}

	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &common.NotFoundError{Resource: "Tenant"}
		}
		return nil, err
	}

	tenant.FullName = req.FullName
	tenant.ContactNumber = req.ContactNumber
	tenant.Email = req.Email
	tenant.Address = req.Address
	tenant.EmergencyContactName = req.EmergencyContactName
	tenant.EmergencyContactNumber = req.EmergencyContactNumber

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, &common.ConflictError{Message: "A tenant with this email already exists."}
		}
		return nil, err
	}
	return tenant, nil
}

// DeleteTenant removes the tenant row and frees their room in the same
// transaction. The room_id foreign key would clear on its own via
// ON DELETE SET NULL, but the room's status flag must be reset with it or
// the two disagree.
func (s *tenantService) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var roomID *uuid.UUID
	err = tx.QueryRow(ctx, `SELECT room_id FROM tenants WHERE id = $1 FOR UPDATE`, id).
		Scan(&roomID)
	if errors.Is(err, pgx.ErrNoRows) {
		return &common.NotFoundError{Resource: "Tenant"}
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if roomID != nil {
		_, err = tx.Exec(ctx, `UPDATE rooms SET status = $1, updated_at = NOW() WHERE id = $2`,
			models.RoomAvailable, *roomID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *tenantService) ListTenants(ctx context.Context) ([]*models.TenantWithRoom, error) {
	return s.tenantRepo.List(ctx)
}

func (s *tenantService) ListAvailableTenants(ctx context.Context) ([]*models.AvailableTenant, error) {
	return s.tenantRepo.ListAvailable(ctx)
}
