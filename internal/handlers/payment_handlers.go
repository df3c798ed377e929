package handlers

import (
	"fmt"
	"net/http"

	"boardsuite/internal/common"
	"boardsuite/internal/services"

	"github.com/labstack/echo/v4"
)

type PaymentHandlers struct {
	billingService services.BillingService
	paymentService services.PaymentService
}

func NewPaymentHandlers(billingService services.BillingService, paymentService services.PaymentService) *PaymentHandlers {
	return &PaymentHandlers{billingService: billingService, paymentService: paymentService}
}

// ListBills handles GET /payments
func (h *PaymentHandlers) ListBills(c echo.Context) error {
	bills, err := h.billingService.ListBills(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, bills)
}

// GenerateBills handles POST /payments/generate
func (h *PaymentHandlers) GenerateBills(c echo.Context) error {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	created, err := h.billingService.GenerateDueBills(c.Request().Context(), userID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("%d new bill(s) generated successfully.", created),
	})
}

// RecordPayment handles POST /payments/payment
func (h *PaymentHandlers) RecordPayment(c echo.Context) error {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req struct {
		BillID        string  `json:"bill_id"`
		AmountPaid    float64 `json:"amount_paid"`
		PaymentDate   string  `json:"payment_date"`
		PaymentMethod string  `json:"payment_method"`
		Notes         *string `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request body")
	}

	billID, err := common.ValidateUUID(req.BillID, "Bill id")
	if err != nil {
		return common.SendError(c, err)
	}
	paymentDate, err := common.ValidateDate(req.PaymentDate, "Payment date")
	if err != nil {
		return common.SendError(c, err)
	}

	err = h.paymentService.RecordPayment(c.Request().Context(), userID, &services.RecordPaymentRequest{
		BillID:        billID,
		AmountPaid:    req.AmountPaid,
		PaymentDate:   paymentDate,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "Payment recorded successfully."})
}

// UploadReceipt handles POST /payments/:id/receipt
func (h *PaymentHandlers) UploadReceipt(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "Payment id")
	if err != nil {
		return common.SendError(c, err)
	}

	file, err := c.FormFile("receipt")
	if err != nil {
		return common.SendValidationError(c, "Receipt file is required")
	}

	src, err := file.Open()
	if err != nil {
		return common.SendError(c, err)
	}
	defer src.Close()

	objectName, err := h.paymentService.AttachReceipt(c.Request().Context(), id, file.Filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"message": "Receipt uploaded successfully.",
		"object":  objectName,
	})
}

// GetReceiptURL handles GET /payments/:id/receipt
func (h *PaymentHandlers) GetReceiptURL(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "Payment id")
	if err != nil {
		return common.SendError(c, err)
	}

	url, err := h.paymentService.ReceiptURL(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
