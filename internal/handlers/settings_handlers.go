package handlers

import (
	"net/http"

	"boardsuite/internal/common"
	"boardsuite/internal/models"
	"boardsuite/internal/repositories"

	"github.com/labstack/echo/v4"
)

// SettingsHandlers reads and writes the single business configuration row.
type SettingsHandlers struct {
	settingsRepo repositories.SettingsRepository
}

func NewSettingsHandlers(settingsRepo repositories.SettingsRepository) *SettingsHandlers {
	return &SettingsHandlers{settingsRepo: settingsRepo}
}

// GetSettings handles GET /settings
func (h *SettingsHandlers) GetSettings(c echo.Context) error {
	settings, err := h.settingsRepo.Get(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /settings
func (h *SettingsHandlers) UpdateSettings(c echo.Context) error {
	var req struct {
		BoardingHouseName string   `json:"boarding_house_name"`
		BusinessAddress   *string  `json:"business_address"`
		ContactPhone      *string  `json:"contact_phone"`
		ContactEmail      *string  `json:"contact_email"`
		CurrencySymbol    string   `json:"currency_symbol"`
		DefaultDuePeriod  int      `json:"default_due_period"`
		LateFeesEnabled   bool     `json:"late_fees_enabled"`
		LateFeeType       string   `json:"late_fee_type"`
		LateFeeAmount     float64  `json:"late_fee_amount"`
		PaymentMethods    []string `json:"payment_methods"`
		GeminiAPIKey      *string  `json:"gemini_api_key"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request body")
	}

	if err := common.ValidateRequiredString(req.BoardingHouseName, "Boarding house name"); err != nil {
		return common.SendError(c, err)
	}
	if req.DefaultDuePeriod <= 0 {
		return common.SendValidationError(c, "Default due period must be positive")
	}
	if req.LateFeeType != "" && req.LateFeeType != models.LateFeeFixed && req.LateFeeType != models.LateFeePercentage {
		return common.SendValidationError(c, "Late fee type must be Fixed or Percentage")
	}
	if req.LateFeeAmount < 0 {
		return common.SendValidationError(c, "Late fee amount cannot be negative")
	}

	settings, err := h.settingsRepo.Get(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}

	settings.BoardingHouseName = req.BoardingHouseName
	settings.BusinessAddress = req.BusinessAddress
	settings.ContactPhone = req.ContactPhone
	settings.ContactEmail = req.ContactEmail
	if req.CurrencySymbol != "" {
		settings.CurrencySymbol = req.CurrencySymbol
	}
	settings.DefaultDuePeriod = req.DefaultDuePeriod
	settings.LateFeesEnabled = req.LateFeesEnabled
	if req.LateFeeType != "" {
		settings.LateFeeType = req.LateFeeType
	}
	settings.LateFeeAmount = req.LateFeeAmount
	if req.PaymentMethods != nil {
		settings.PaymentMethods = req.PaymentMethods
	}
	settings.GeminiAPIKey = req.GeminiAPIKey

	if err := h.settingsRepo.Update(c.Request().Context(), settings); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}
