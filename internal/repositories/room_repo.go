package repositories

import (
	"context"

	"boardsuite/internal/models"

	"github.com/google/uuid"
)

type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	Update(ctx context.Context, room *models.Room) error
	List(ctx context.Context) ([]*models.RoomWithOccupant, error)
	ListAvailable(ctx context.Context) ([]*models.AvailableRoom, error)
}

type roomRepo struct {
	db Database
}

func NewRoomRepo(db Database) RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) Create(ctx context.Context, room *models.Room) error {
	query := `
		INSERT INTO rooms (id, room_number, description, capacity, status, rate_per_month, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, room.ID, room.RoomNumber, room.Description, room.Capacity, room.Status, room.RatePerMonth, room.UserID)
	return err
}

func (r *roomRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	room := &models.Room{}
	query := `
		SELECT id, room_number, description, capacity, status, rate_per_month, user_id, created_at, updated_at
		FROM rooms
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&room.ID, &room.RoomNumber, &room.Description, &room.Capacity, &room.Status, &room.RatePerMonth, &room.UserID, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (r *roomRepo) Update(ctx context.Context, room *models.Room) error {
	query := `
		UPDATE rooms
		SET room_number = $1, description = $2, capacity = $3, rate_per_month = $4, status = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, room.RoomNumber, room.Description, room.Capacity, room.RatePerMonth, room.Status, room.ID)
	return err
}

func (r *roomRepo) List(ctx context.Context) ([]*models.RoomWithOccupant, error) {
	query := `
		SELECT r.id, r.room_number, r.description, r.capacity, r.status, r.rate_per_month, r.user_id, r.created_at, r.updated_at,
		       t.full_name AS occupant_name
		FROM rooms r
		LEFT JOIN tenants t ON r.id = t.room_id
		ORDER BY r.room_number ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*models.RoomWithOccupant
	for rows.Next() {
		room := &models.RoomWithOccupant{}
		if err := rows.Scan(&room.ID, &room.RoomNumber, &room.Description, &room.Capacity, &room.Status, &room.RatePerMonth, &room.UserID, &room.CreatedAt, &room.UpdatedAt, &room.OccupantName); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *roomRepo) ListAvailable(ctx context.Context) ([]*models.AvailableRoom, error) {
	query := `
		SELECT id, room_number
		FROM rooms
		WHERE status = 'Available'
		ORDER BY room_number ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*models.AvailableRoom
	for rows.Next() {
		room := &models.AvailableRoom{}
		if err := rows.Scan(&room.ID, &room.RoomNumber); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}
