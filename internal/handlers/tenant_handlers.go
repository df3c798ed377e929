package handlers

import (
	"net/http"

	"boardsuite/internal/common"
	"boardsuite/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type TenantHandlers struct {
	tenantService    services.TenantService
	occupancyService services.OccupancyService
	paymentService   services.PaymentService
}

func NewTenantHandlers(tenantService services.TenantService, occupancyService services.OccupancyService, paymentService services.PaymentService) *TenantHandlers {
	return &TenantHandlers{
		tenantService:    tenantService,
		occupancyService: occupancyService,
		paymentService:   paymentService,
	}
}

type tenantRequest struct {
	FullName               string  `json:"full_name"`
	ContactNumber          *string `json:"contact_number"`
	Email                  *string `json:"email"`
	Address                *string `json:"address"`
	EmergencyContactName   *string `json:"emergency_contact_name"`
	EmergencyContactNumber *string `json:"emergency_contact_number"`
	RoomID                 *string `json:"room_id"`
}

// CreateTenant handles POST /tenants
func (h *TenantHandlers) CreateTenant(c echo.Context) error {
	var req tenantRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request body")
	}

	var roomID *uuid.UUID
	if req.RoomID != nil && *req.RoomID != "" {
		id, err := common.ValidateUUID(*req.RoomID, "Room id")
		if err != nil {
			return common.SendError(c, err)
		}
		roomID = &id
	}

	tenant, err := h.occupancyService.CreateTenant(c.Request().Context(), &services.CreateTenantRequest{
		FullName:               req.FullName,
		ContactNumber:          req.ContactNumber,
		Email:                  req.Email,
		Address:                req.Address,
		EmergencyContactName:   req.EmergencyContactName,
		EmergencyContactNumber: req.EmergencyContactNumber,
		RoomID:                 roomID,
	})
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, tenant)
}

// ListTenants handles GET /tenants
func (h *TenantHandlers) ListTenants(c echo.Context) error {
	tenants, err := h.tenantService.ListTenants(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, tenants)
}

// ListAvailableTenants handles GET /tenants/available
func (h *TenantHandlers) ListAvailableTenants(c echo.Context) error {
	tenants, err := h.tenantService.ListAvailableTenants(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, tenants)
}

// UpdateTenant handles PUT /tenants/:id
func (h *TenantHandlers) UpdateTenant(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "Tenant id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req tenantRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request body")
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request().Context(), id, &services.UpdateTenantRequest{
		FullName:               req.FullName,
		ContactNumber:          req.ContactNumber,
		Email:                  req.Email,
		Address:                req.Address,
		EmergencyContactName:   req.EmergencyContactName,
		EmergencyContactNumber: req.EmergencyContactNumber,
	})
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, tenant)
}

// DeleteTenant handles DELETE /tenants/:id
func (h *TenantHandlers) DeleteTenant(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "Tenant id")
	if err != nil {
		return common.SendError(c, err)
	}

	if err := h.tenantService.DeleteTenant(c.Request().Context(), id); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Tenant deleted successfully."})
}

// RelocateTenant handles POST /tenants/:id/relocate
func (h *TenantHandlers) RelocateTenant(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "Tenant id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req struct {
		NewRoomID string `json:"new_room_id"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request body")
	}
	newRoomID, err := common.ValidateUUID(req.NewRoomID, "New room id")
	if err != nil {
		return common.SendError(c, err)
	}

	if err := h.occupancyService.RelocateTenant(c.Request().Context(), id, newRoomID); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Tenant relocated successfully."})
}

// MarkPaid handles POST /tenants/:id/mark-paid
func (h *TenantHandlers) MarkPaid(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "Tenant id")
	if err != nil {
		return common.SendError(c, err)
	}

	paidDate, err := h.paymentService.MarkTenantPaidToday(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message":           "Tenant marked as paid.",
		"last_payment_date": paidDate.Format("2006-01-02"),
	})
}
