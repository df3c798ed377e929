package handlers

import (
	"net/http"

	"boardsuite/internal/common"
	"boardsuite/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type RoomHandlers struct {
	roomService      services.RoomService
	occupancyService services.OccupancyService
}

func NewRoomHandlers(roomService services.RoomService, occupancyService services.OccupancyService) *RoomHandlers {
	return &RoomHandlers{roomService: roomService, occupancyService: occupancyService}
}

type roomRequest struct {
	RoomNumber   string  `json:"room_number"`
	Description  *string `json:"description"`
	Capacity     int     `json:"capacity"`
	Status       string  `json:"status"`
	RatePerMonth float64 `json:"rate_per_month"`
}

// CreateRoom handles POST /rooms
func (h *RoomHandlers) CreateRoom(c echo.Context) error {
	var req roomRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request body")
	}

	var ownerID *uuid.UUID
	if id, ok := common.GetUserIDFromContext(c.Request().Context()); ok {
		ownerID = &id
	}

	room, err := h.roomService.CreateRoom(c.Request().Context(), &services.CreateRoomRequest{
		RoomNumber:   req.RoomNumber,
		Description:  req.Description,
		Capacity:     req.Capacity,
		Status:       req.Status,
		RatePerMonth: req.RatePerMonth,
		UserID:       ownerID,
	})
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, room)
}

// ListRooms handles GET /rooms
func (h *RoomHandlers) ListRooms(c echo.Context) error {
	rooms, err := h.roomService.ListRooms(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, rooms)
}

// ListAvailableRooms handles GET /rooms/available
func (h *RoomHandlers) ListAvailableRooms(c echo.Context) error {
	rooms, err := h.roomService.ListAvailableRooms(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, rooms)
}

// UpdateRoom handles PUT /rooms/:id
func (h *RoomHandlers) UpdateRoom(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "Room id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req roomRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request body")
	}

	room, err := h.roomService.UpdateRoom(c.Request().Context(), id, &services.UpdateRoomRequest{
		RoomNumber:   req.RoomNumber,
		Description:  req.Description,
		Capacity:     req.Capacity,
		Status:       req.Status,
		RatePerMonth: req.RatePerMonth,
	})
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// DeleteRoom handles DELETE /rooms/:id
func (h *RoomHandlers) DeleteRoom(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "Room id")
	if err != nil {
		return common.SendError(c, err)
	}

	if err := h.roomService.DeleteRoom(c.Request().Context(), id); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Room deleted successfully."})
}

// UnassignRoom handles POST /rooms/:id/unassign
func (h *RoomHandlers) UnassignRoom(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "Room id")
	if err != nil {
		return common.SendError(c, err)
	}

	if err := h.occupancyService.UnassignRoom(c.Request().Context(), id); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Room unassigned successfully."})
}
