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

type CreateRoomRequest struct {
	RoomNumber   string
	Description  *string
	Capacity     int
	Status       string
	RatePerMonth float64
	UserID       *uuid.UUID
}

type UpdateRoomRequest struct {
	RoomNumber   string
	Description  *string
	Capacity     int
	Status       string
	RatePerMonth float64
}

type RoomService interface {
	CreateRoom(ctx context.Context, req *CreateRoomRequest) (*models.Room, error)
	UpdateRoom(ctx context.Context, id uuid.UUID, req *UpdateRoomRequest) (*models.Room, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
	ListRooms(ctx context.Context) ([]*models.RoomWithOccupant, error)
	ListAvailableRooms(ctx context.Context) ([]*models.AvailableRoom, error)
}

type roomService struct {
	db       repositories.Database
	roomRepo repositories.RoomRepository
}

func NewRoomService(db repositories.Database, roomRepo repositories.RoomRepository) RoomService {
	return &roomService{db: db, roomRepo: roomRepo}
}

func validateRoomFields(roomNumber, status string, capacity int, rate float64) error {
	if roomNumber == "" {
		return &common.ValidationError{Message: "Room number is required."}
	}
	if capacity <= 0 {
		return &common.ValidationError{Message: "Capacity must be positive."}
	}
	if rate < 0 {
		return &common.ValidationError{Message: "Rate per month cannot be negative."}
	}
	if status != "" && !models.ValidRoomStatus(status) {
		return &common.ValidationError{Message: "Unknown room status."}
	}
	return nil
}

func (s *roomService) CreateRoom(ctx context.Context, req *CreateRoomRequest) (*models.Room, error) {
	if err := validateRoomFields(req.RoomNumber, req.Status, req.Capacity, req.RatePerMonth); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.RoomAvailable
	}

	room := &models.Room{
		ID:           uuid.New(),
		RoomNumber:   req.RoomNumber,
		Description:  req.Description,
		Capacity:     req.Capacity,
		Status:       status,
		RatePerMonth: req.RatePerMonth,
		UserID:       req.UserID,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, &common.ConflictError{Message: "A room with this number already exists."}
		}
		return nil, err
	}
	return room, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, id uuid.UUID, req *UpdateRoomRequest) (*models.Room, error) {
	if err := validateRoomFields(req.RoomNumber, req.Status, req.Capacity, req.RatePerMonth); err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &common.NotFoundError{Resource: "Room"}
		}
		return nil, err
	}

	room.RoomNumber = req.RoomNumber
	room.Description = req.Description
	room.Capacity = req.Capacity
	room.RatePerMonth = req.RatePerMonth
	if req.Status != "" {
		room.Status = req.Status
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, &common.ConflictError{Message: "A room with this number already exists."}
		}
		return nil, err
	}
	return room, nil
}

// DeleteRoom refuses to remove a room that still has a tenant, so the
// occupancy record can never point at a missing row.
func (s *roomService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	var occupants int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM tenants WHERE room_id = $1`, id).Scan(&occupants)
	if err != nil {
		return err
	}
	if occupants > 0 {
		return &common.ConflictError{Message: "Cannot delete room. It is currently occupied."}
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &common.NotFoundError{Resource: "Room"}
	}
	return nil
}

func (s *roomService) ListRooms(ctx context.Context) ([]*models.RoomWithOccupant, error) {
	return s.roomRepo.List(ctx)
}

func (s *roomService) ListAvailableRooms(ctx context.Context) ([]*models.AvailableRoom, error) {
	return s.roomRepo.ListAvailable(ctx)
}
