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

// CreateTenantRequest carries the tenant's personal details plus an
// optional room to assign on creation.
type CreateTenantRequest struct {
	FullName               string
	ContactNumber          *string
	Email                  *string
	Address                *string
	EmergencyContactName   *string
	EmergencyContactNumber *string
	RoomID                 *uuid.UUID
}

// OccupancyService owns every transition of the tenant-room relationship.
// All multi-row transitions run inside a transaction so a crash or a lost
// race can never leave a room marked Occupied with no tenant, or two
// tenants in one room.
type OccupancyService interface {
	CreateTenant(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error)
	RelocateTenant(ctx context.Context, tenantID, newRoomID uuid.UUID) error
	UnassignRoom(ctx context.Context, roomID uuid.UUID) error
}

type occupancyService struct {
	db repositories.Database
}

func NewOccupancyService(db repositories.Database) OccupancyService {
	return &occupancyService{db: db}
}

func (s *occupancyService) CreateTenant(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error) {
	if req.FullName == "" {
		return nil, &common.ValidationError{Message: "Full name is required."}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tenant := &models.Tenant{
		ID:                     uuid.New(),
		FullName:               req.FullName,
		ContactNumber:          req.ContactNumber,
		Email:                  req.Email,
		Address:                req.Address,
		EmergencyContactName:   req.EmergencyContactName,
		EmergencyContactNumber: req.EmergencyContactNumber,
		RoomID:                 req.RoomID,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO tenants (id, full_name, contact_number, email, address, emergency_contact_name, emergency_contact_number, room_id, registration_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING registration_date
	`, tenant.ID, tenant.FullName, tenant.ContactNumber, tenant.Email, tenant.Address, tenant.EmergencyContactName, tenant.EmergencyContactNumber, tenant.RoomID).
		Scan(&tenant.RegistrationDate)
	if err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, &common.ConflictError{Message: "A tenant with this email already exists."}
		}
		return nil, err
	}

	if req.RoomID != nil {
		// Conditional update doubles as the availability check: zero rows
		// means the room vanished or was taken since the form loaded.
		tag, err := tx.Exec(ctx, `UPDATE rooms SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
			models.RoomOccupied, *req.RoomID, models.RoomAvailable)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, &common.ConflictError{Message: "The selected room is no longer available. Please choose another."}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *occupancyService) RelocateTenant(ctx context.Context, tenantID, newRoomID uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Lock the tenant row first, then the room rows, so concurrent
	// relocations acquire locks in a consistent order.
	var currentRoomID *uuid.UUID
	err = tx.QueryRow(ctx, `SELECT room_id FROM tenants WHERE id = $1 FOR UPDATE`, tenantID).
		Scan(&currentRoomID)
	if errors.Is(err, pgx.ErrNoRows) {
		return &common.NotFoundError{Resource: "Tenant"}
	}
	if err != nil {
		return err
	}

	if currentRoomID != nil && *currentRoomID == newRoomID {
		return &common.ValidationError{Message: "Tenant is already in this room."}
	}

	var newRoomStatus string
	err = tx.QueryRow(ctx, `SELECT status FROM rooms WHERE id = $1 FOR UPDATE`, newRoomID).
		Scan(&newRoomStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return &common.NotFoundError{Resource: "Room"}
	}
	if err != nil {
		return err
	}
	if newRoomStatus != models.RoomAvailable {
		return &common.ConflictError{Message: "Destination room is not available."}
	}

	if currentRoomID != nil {
		// Only free the old room if no one else is recorded in it.
		var occupants int
		err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM tenants WHERE room_id = $1 AND id != $2`, *currentRoomID, tenantID).
			Scan(&occupants)
		if err != nil {
			return err
		}
		if occupants == 0 {
			_, err = tx.Exec(ctx, `UPDATE rooms SET status = $1, updated_at = NOW() WHERE id = $2`,
				models.RoomAvailable, *currentRoomID)
			if err != nil {
				return err
			}
		}
	}

	_, err = tx.Exec(ctx, `UPDATE tenants SET room_id = $1 WHERE id = $2`, newRoomID, tenantID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `UPDATE rooms SET status = $1, updated_at = NOW() WHERE id = $2`,
		models.RoomOccupied, newRoomID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *occupancyService) UnassignRoom(ctx context.Context, roomID uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var tenantID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM tenants WHERE room_id = $1 LIMIT 1`, roomID).
		Scan(&tenantID)
	if errors.Is(err, pgx.ErrNoRows) {
		return &common.DomainError{Message: "Room has no tenant assigned."}
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `UPDATE tenants SET room_id = NULL WHERE id = $1`, tenantID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `UPDATE rooms SET status = $1, updated_at = NOW() WHERE id = $2`,
		models.RoomAvailable, roomID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
