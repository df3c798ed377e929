package repositories

import (
	"context"
	"encoding/json"

	"boardsuite/internal/models"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, settings *models.Settings) error
}

type settingsRepo struct {
	db Database
}

func NewSettingsRepo(db Database) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Get(ctx context.Context) (*models.Settings, error) {
	settings := &models.Settings{}
	var methods []byte
	query := `
		SELECT id, user_id, boarding_house_name, business_address, contact_phone, contact_email, currency_symbol,
		       default_due_period, late_fees_enabled, late_fee_type, late_fee_amount, payment_methods, gemini_api_key,
		       created_at, updated_at
		FROM settings
		WHERE id = 1
	`
	err := r.db.QueryRow(ctx, query).Scan(&settings.ID, &settings.UserID, &settings.BoardingHouseName, &settings.BusinessAddress, &settings.ContactPhone, &settings.ContactEmail, &settings.CurrencySymbol, &settings.DefaultDuePeriod, &settings.LateFeesEnabled, &settings.LateFeeType, &settings.LateFeeAmount, &methods, &settings.GeminiAPIKey, &settings.CreatedAt, &settings.UpdatedAt)
	if err != nil {
		return nil, err
	}

	settings.PaymentMethods = []string{}
	if len(methods) > 0 {
		if err := json.Unmarshal(methods, &settings.PaymentMethods); err != nil {
			return nil, err
		}
	}
	return settings, nil
}

func (r *settingsRepo) Update(ctx context.Context, settings *models.Settings) error {
	methods, err := json.Marshal(settings.PaymentMethods)
	if err != nil {
		return err
	}

	query := `
		UPDATE settings
		SET user_id = $1, boarding_house_name = $2, business_address = $3, contact_phone = $4, contact_email = $5,
		    currency_symbol = $6, default_due_period = $7, late_fees_enabled = $8, late_fee_type = $9,
		    late_fee_amount = $10, payment_methods = $11, gemini_api_key = $12, updated_at = NOW()
		WHERE id = 1
	`
	_, err = r.db.Exec(ctx, query, settings.UserID, settings.BoardingHouseName, settings.BusinessAddress, settings.ContactPhone, settings.ContactEmail, settings.CurrencySymbol, settings.DefaultDuePeriod, settings.LateFeesEnabled, settings.LateFeeType, settings.LateFeeAmount, methods, settings.GeminiAPIKey)
	return err
}
